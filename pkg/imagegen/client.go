package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrMissingAPIKey 未配置 API 密钥
var ErrMissingAPIKey = errors.New("未配置 GOOGLE_AI_API_KEY")

// ImagenClient Google Imagen 文生图客户端
type ImagenClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// Instance 预测请求的单个输入
type Instance struct {
	Prompt string `json:"prompt"`
}

// Parameters 生成参数
type Parameters struct {
	SampleCount      int    `json:"sampleCount"`
	AspectRatio      string `json:"aspectRatio"`
	PersonGeneration string `json:"personGeneration"`
	SafetySetting    string `json:"safetySetting"`
}

// PredictRequest 表示预测请求
type PredictRequest struct {
	Instances  []Instance `json:"instances"`
	Parameters Parameters `json:"parameters"`
}

// PredictResponse 表示预测响应
type PredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// Image 解码后的图片
type Image struct {
	Data        []byte
	ContentType string
}

// NewImagenClient 创建新的 Imagen 客户端，requestsPerMinute <= 0 时不限速
func NewImagenClient(baseURL, apiKey, model string, timeout time.Duration, requestsPerMinute int) *ImagenClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}

	return &ImagenClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// Generate 发送生成请求，返回第一张图片
func (c *ImagenClient) Generate(ctx context.Context, prompt string) (*Image, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	// 构建请求
	reqBody := PredictRequest{
		Instances: []Instance{{Prompt: prompt}},
		Parameters: Parameters{
			SampleCount:      1,
			AspectRatio:      "9:16",
			PersonGeneration: "dont_allow",
			SafetySetting:    "block_few",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("等待限流失败: %w", err)
	}

	// 创建HTTP请求
	url := fmt.Sprintf("%s/models/%s:predict", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	// 设置请求头
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	// 发送请求
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	// 读取响应
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查状态码
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API返回错误 (%d): %s", resp.StatusCode, string(body))
	}

	// 解析响应
	var predictResp PredictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if len(predictResp.Predictions) == 0 || predictResp.Predictions[0].BytesBase64Encoded == "" {
		return nil, fmt.Errorf("API返回空图片")
	}

	prediction := predictResp.Predictions[0]
	data, err := base64.StdEncoding.DecodeString(prediction.BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}

	contentType := prediction.MimeType
	if contentType == "" {
		contentType = "image/png"
	}

	return &Image{Data: data, ContentType: contentType}, nil
}
