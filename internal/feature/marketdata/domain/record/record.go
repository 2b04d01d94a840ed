package record

// Record is one upstream data bundle keyed by field name. Any field may be
// missing; callers must go through Lookup and friends.
type Record map[string]Value

// FromMap converts a decoded JSON object into a Record.
func FromMap(m map[string]any) Record {
	r := make(Record, len(m))
	for k, v := range m {
		r[k] = FromAny(v)
	}
	return r
}

// Lookup returns the value stored under key, or Null when the key is absent.
func (r Record) Lookup(key string) Value {
	if r == nil {
		return Null
	}
	return r[key]
}

// LookupAny walks the fallback chain and returns the first present, non-null
// value. Null when every key misses.
func (r Record) LookupAny(keys ...string) Value {
	for _, k := range keys {
		if v := r.Lookup(k); !v.IsNull() {
			return v
		}
	}
	return Null
}

// LookupOr returns the value under key, or def when the key is absent or null.
func (r Record) LookupOr(key string, def Value) Value {
	if v := r.Lookup(key); !v.IsNull() {
		return v
	}
	return def
}

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	return !r.Lookup(key).IsNull()
}
