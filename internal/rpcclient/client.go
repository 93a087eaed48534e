package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
)

const defaultTimeout = 30 * time.Second

var (
	ErrConfigInvalid   = errors.New("rpc client config invalid")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrRequestFailed   = errors.New("rpc request failed")
	ErrResponseInvalid = errors.New("rpc response invalid")
	ErrNoFiles         = errors.New("no files to upload")
)

// RemoteError 服务端业务失败（HTTP 200，success=false 或 status_code != 0）
type RemoteError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *RemoteError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("remote error: %s (request_id=%s)", e.Message, e.RequestID)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote error %d: %s", e.StatusCode, e.Message)
	}
	return "remote error: " + e.Message
}

// Params doAll 请求参数
type Params struct {
	Action  string                 `json:"action"`
	Table   string                 `json:"table"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Where   map[string]interface{} `json:"where,omitempty"`
	OrderBy string                 `json:"order_by,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
}

// Result doAll 响应
type Result struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	InsertID  uint            `json:"insertId,omitempty"`
	Affected  *int64          `json:"affected,omitempty"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// Decode 将 data 解码到目标
func (r *Result) Decode(dest interface{}) error {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}

// Options 客户端选项
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Store      TokenStore
	HTTPClient *http.Client
}

// Client 管理端 RPC 客户端
type Client struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
}

// New 创建客户端
func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base_url %q", ErrConfigInvalid, baseURL)
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryTokenStore()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, store: store, httpClient: httpClient}, nil
}

// NewFromConfig 按 client 配置段创建客户端，token_file 为空时使用内存存储
func NewFromConfig(cfg config.ClientConfig) (*Client, error) {
	var store TokenStore = NewMemoryTokenStore()
	if path := strings.TrimSpace(cfg.TokenFile); path != "" {
		store = NewFileTokenStore(path)
	}
	return New(Options{
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Store:   store,
	})
}

// Store 返回登录态存储
func (c *Client) Store() TokenStore {
	return c.store
}

// LoginInput 登录参数
type LoginInput struct {
	Email          string                 `json:"email"`
	Password       string                 `json:"password"`
	CaptchaPayload map[string]interface{} `json:"captcha_payload,omitempty"`
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expires_at"`
	User      json.RawMessage `json:"user"`
}

// Login 登录并保存 token
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var result LoginResult
	if err := c.Call(ctx, http.MethodPost, "/auth/login", input, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrResponseInvalid)
	}
	if err := c.store.Save(result.Token, result.User); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return &result, nil
}

// Logout 清除本地登录态
func (c *Client) Logout() error {
	return c.store.Clear()
}

// DoAll 调用 POST /doAll，success=false 返回 *RemoteError
func (c *Client) DoAll(ctx context.Context, params Params) (*Result, error) {
	if strings.TrimSpace(params.Table) == "" || strings.TrimSpace(params.Action) == "" {
		return nil, fmt.Errorf("%w: table and action are required", ErrConfigInvalid)
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, http.MethodPost, "/doAll", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeRPCResult(raw)
}

// Get doAll get 的便捷封装
func (c *Client) Get(ctx context.Context, table string, where map[string]interface{}, dest interface{}) error {
	result, err := c.DoAll(ctx, Params{Action: constants.RPCActionGet, Table: table, Where: where})
	if err != nil {
		return err
	}
	return result.Decode(dest)
}

// UploadFile 待上传文件
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadImages 调用 POST /upload-images，返回可访问路径
func (c *Client) UploadImages(ctx context.Context, scene string, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if scene != "" {
		if err := writer.WriteField("scene", scene); err != nil {
			return nil, err
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile("images", filepath.Base(file.Name))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	raw, err := c.send(ctx, http.MethodPost, "/upload-images", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	result, err := decodeRPCResult(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Paths []string `json:"paths"`
	}
	if err := result.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Paths, nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

// Call 调用返回 {status_code,msg,data} 信封的接口，data 解码到 out
func (c *Client) Call(ctx context.Context, method, path string, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(body)
	}
	raw, err := c.send(ctx, method, path, "application/json", reader)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if env.StatusCode == http.StatusUnauthorized {
		c.clearToken()
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Msg)
	}
	if env.StatusCode != 0 {
		return &RemoteError{StatusCode: env.StatusCode, Message: env.Msg}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}

// send 发送请求，HTTP 401 时清除本地 token
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	token, err := c.store.Token()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.clearToken()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	return raw, nil
}

func (c *Client) clearToken() {
	_ = c.store.Clear()
}

func decodeRPCResult(raw []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !result.Success {
		return &result, &RemoteError{Message: result.Message, RequestID: result.RequestID}
	}
	return &result, nil
}
