package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Lookup(t *testing.T) {
	t.Parallel()

	r := Record{
		"currentPrice":  Number(150.25),
		"shortName":     String("Apple Inc."),
		"previousClose": Null,
	}

	assert.Equal(t, Number(150.25), r.Lookup("currentPrice"))
	assert.True(t, r.Lookup("missing").IsNull())
	assert.True(t, r.Lookup("previousClose").IsNull())

	var nilRecord Record
	assert.True(t, nilRecord.Lookup("anything").IsNull())
}

func TestRecord_LookupAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		keys []string
		want Value
	}{
		{
			name: "first key present",
			rec:  Record{"currentPrice": Number(10), "regularMarketPrice": Number(11)},
			keys: []string{"currentPrice", "regularMarketPrice"},
			want: Number(10),
		},
		{
			name: "falls back when first key is missing",
			rec:  Record{"regularMarketPrice": Number(11)},
			keys: []string{"currentPrice", "regularMarketPrice"},
			want: Number(11),
		},
		{
			name: "falls back when first key is null",
			rec:  Record{"currentPrice": Null, "regularMarketPrice": Number(11)},
			keys: []string{"currentPrice", "regularMarketPrice"},
			want: Number(11),
		},
		{
			name: "zero is a present value",
			rec:  Record{"volume": Number(0), "regularMarketVolume": Number(5)},
			keys: []string{"volume", "regularMarketVolume"},
			want: Number(0),
		},
		{
			name: "all missing",
			rec:  Record{},
			keys: []string{"open", "regularMarketOpen"},
			want: Null,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rec.LookupAny(tt.keys...))
		})
	}
}

func TestRecord_LookupOr(t *testing.T) {
	t.Parallel()

	r := Record{"sector": String("Technology"), "industry": Null}
	assert.Equal(t, String("Technology"), r.LookupOr("sector", String("N/A")))
	assert.Equal(t, String("N/A"), r.LookupOr("industry", String("N/A")))
	assert.Equal(t, String("N/A"), r.LookupOr("country", String("N/A")))
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	r := Record{
		"n":    Number(3000000000000),
		"f":    Number(1.57),
		"s":    String("USD"),
		"b":    Bool(true),
		"z":    Null,
		"list": List(Object(Record{"name": String("Tim Cook")})),
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":3000000000000,"f":1.57,"s":"USD","b":true,"z":null,"list":[{"name":"Tim Cook"}]}`, string(b))
}

func TestValue_MarshalJSON_NoHTMLEscape(t *testing.T) {
	t.Parallel()

	r := Record{
		"link<&>": String("https://x/a?b=1&c=<2>"),
		"tags":    List(String("R&D"), Object(Record{"q": String("a>b")})),
	}

	b, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"link<&>":"https://x/a?b=1&c=<2>","tags":["R&D",{"q":"a>b"}]}`, string(b))

	b, err = List().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var r Record
	err := json.Unmarshal([]byte(`{"price":189.5,"currency":"USD","officers":[{"name":"A"}],"bid":null}`), &r)
	require.NoError(t, err)

	f, ok := r.Lookup("price").Float()
	require.True(t, ok)
	assert.Equal(t, 189.5, f)

	s, ok := r.Lookup("currency").Str()
	require.True(t, ok)
	assert.Equal(t, "USD", s)

	officers := r.Lookup("officers").Items()
	require.Len(t, officers, 1)
	first, ok := officers[0].Record()
	require.True(t, ok)
	assert.Equal(t, String("A"), first.Lookup("name"))

	assert.True(t, r.Lookup("bid").IsNull())
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	assert.True(t, Number(math.NaN()).IsNull())
	assert.True(t, Number(math.Inf(1)).IsNull())
}

func TestValue_Truthy(t *testing.T) {
	t.Parallel()

	assert.False(t, Null.Truthy())
	assert.False(t, Number(0).Truthy())
	assert.True(t, Number(-1).Truthy())
	assert.False(t, String("").Truthy())
	assert.False(t, List().Truthy())
	assert.True(t, List(Null).Truthy())
}

func TestValue_NullFloat(t *testing.T) {
	t.Parallel()

	assert.True(t, Number(2.5).NullFloat().Valid)
	assert.False(t, String("2.5").NullFloat().Valid)
	assert.False(t, Null.NullFloat().Valid)
}
