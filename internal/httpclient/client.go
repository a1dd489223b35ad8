package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// 单次响应体读取上限，避免异常源拖垮内存
	maxBodySize = int64(10 * 1024 * 1024)

	defaultMaxRetries      = 2
	initialBackoffInterval = 600 * time.Millisecond
	maxBackoffInterval     = 5 * time.Second
)

// StatusError 表示非 2xx 的 HTTP 响应
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client 是带指数退避重试的只读 GET 客户端。
// 429 与 5xx 会重试，其余 4xx 直接放弃。
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries uint64
}

func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxRetries: defaultMaxRetries,
	}
}

// Get 抓取 URL 并返回响应体。来源多为中文站点，带上对应的 Accept-Language。
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		b, err := c.doGet(ctx, url)
		if err != nil {
			if retryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialBackoffInterval
	bo.MaxInterval = maxBackoffInterval

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8,ko;q=0.7")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return body, nil
}

// retryable 判断一次失败是否值得重试：网络类错误和 429/5xx 重试，其余 4xx 不重试
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}
	// context 到期时 backoff.WithContext 会自行终止，这里不再区分
	return true
}
