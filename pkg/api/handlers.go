package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/monitor"
	"DailyWrapped/pkg/render"
)

// RecordReader wrapped 记录查询
type RecordReader interface {
	GetLatestWrapped(ctx context.Context, userID string) (*model.WrappedRecord, error)
}

// ImageReader 图片读取
type ImageReader interface {
	GetImage(ctx context.Context, id string) (*model.StoredImage, error)
}

// ReadyFunc 就绪检查，返回 nil 表示依赖可用
type ReadyFunc func(ctx context.Context) error

// Handlers API处理程序
type Handlers struct {
	records RecordReader
	images  ImageReader
	monitor *monitor.Monitor
	cache   *ristretto.Cache[string, string]
	ready   ReadyFunc
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	records RecordReader,
	images ImageReader,
	mon *monitor.Monitor,
	cache *ristretto.Cache[string, string],
	ready ReadyFunc,
) *Handlers {
	return &Handlers{
		records: records,
		images:  images,
		monitor: mon,
		cache:   cache,
		ready:   ready,
	}
}

// NewRenderCache 创建模板渲染缓存，按字节计费
func NewRenderCache(maxItems int64) (*ristretto.Cache[string, string], error) {
	if maxItems <= 0 {
		maxItems = 10000
	}
	return ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems * 8 << 10, // 每条约 8KB
		BufferItems: 64,
	})
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
	}

	resp := gin.H{"status": "ready"}
	if h.monitor != nil {
		resp["overall"] = h.monitor.Overall()
		resp["components"] = h.monitor.GetAllStatus()
	}
	c.JSON(http.StatusOK, resp)
}

// GetLatestWrapped 返回用户最新的记录，没有时 data 为 null
func (h *Handlers) GetLatestWrapped(c *gin.Context) {
	record, err := h.records.GetLatestWrapped(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取wrapped失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": record,
	})
}

// ViewWrapped 有图片时返回图片，否则返回模板渲染的 HTML
func (h *Handlers) ViewWrapped(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.records.GetLatestWrapped(ctx, c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取wrapped失败: " + err.Error(),
		})
		return
	}
	if record == nil {
		c.Status(http.StatusNoContent)
		return
	}

	if record.HasImage() {
		img, err := h.images.GetImage(ctx, *record.ImageStorageID)
		if err != nil {
			log.Printf("读取wrapped图片失败，改用模板: %v\n", err)
		} else if img != nil {
			writeImage(c, img)
			return
		}
	}

	html, err := h.FallbackHTML(record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "渲染模板失败: " + err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetImage 返回存储的图片
func (h *Handlers) GetImage(c *gin.Context) {
	storageID := c.Param("storageId")
	if _, err := uuid.Parse(storageID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "图片不存在",
		})
		return
	}

	img, err := h.images.GetImage(c.Request.Context(), storageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取图片失败: " + err.Error(),
		})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "图片不存在",
		})
		return
	}

	writeImage(c, img)
}

// PreviewTemplate 使用示例数据渲染模板，可通过 date 查询参数指定日期
func (h *Handlers) PreviewTemplate(c *gin.Context) {
	design, err := strconv.Atoi(c.Param("design"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的设计编号",
		})
		return
	}

	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	html, err := render.RenderHTML(design, render.SampleStats(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "渲染模板失败: " + err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// FallbackHTML 渲染记录的模板，记录不可变，按记录ID缓存
func (h *Handlers) FallbackHTML(record *model.WrappedRecord) (string, error) {
	key := cacheKey(record.ID)
	if h.cache != nil {
		if html, found := h.cache.Get(key); found {
			return html, nil
		}
	}

	html, err := render.RenderHTML(record.DesignIndex, record.Stats, record.Date)
	if err != nil {
		return "", err
	}

	if h.cache != nil {
		h.cache.SetWithTTL(key, html, int64(len(html)), 48*time.Hour)
	}
	return html, nil
}

// Prewarm 收到生成事件后预先渲染没有图片的记录
func (h *Handlers) Prewarm(ctx context.Context, event model.WrappedEvent) error {
	if event.HasImage || h.cache == nil {
		return nil
	}

	record, err := h.records.GetLatestWrapped(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("预热查询记录失败: %w", err)
	}
	if record == nil || record.ID != event.RecordID {
		// 记录已过期或被更新的记录取代
		return nil
	}

	if _, err := h.FallbackHTML(record); err != nil {
		return fmt.Errorf("预热渲染失败: %w", err)
	}
	h.cache.Wait()
	return nil
}

// Cached 记录的渲染结果是否已缓存
func (h *Handlers) Cached(recordID string) bool {
	if h.cache == nil {
		return false
	}
	_, found := h.cache.Get(cacheKey(recordID))
	return found
}

func cacheKey(recordID string) string {
	return "wrapped:html:" + recordID
}

func writeImage(c *gin.Context, img *model.StoredImage) {
	contentType := img.ContentType
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, contentType, img.Data)
}

// ErrNotReady 依赖未就绪
var ErrNotReady = errors.New("依赖未就绪")
