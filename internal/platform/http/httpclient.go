package http

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog"
)

// NewHTTPClient は上流API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConns: compare_stocksの並列取得でも枯渇しないよう100
//   - Jar: Yahooのcrumbはセッションcookieに紐づくため常に保持
//   - Client.Timeout: リクエスト全体のタイムアウト（upstream.timeout）
//
// 各リクエストはdebugレベルでメソッド・ホスト・ステータス・所要時間を記録します。
func NewHTTPClient(timeout time.Duration, log zerolog.Logger) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingTransport{next: t, log: log},
		Jar:       jar,
	}
}

type loggingTransport struct {
	next http.RoundTripper
	log  zerolog.Logger
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := l.next.RoundTrip(req)

	ev := l.log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("upstream request failed")
		return nil, err
	}
	ev.Int("status", res.StatusCode).Msg("upstream request")
	return res, nil
}
