package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"DailyWrapped/pkg/model"
)

// Repository 内存数据仓库，开发模式和测试使用，与 database 包实现相同的契约
type Repository struct {
	usage   []model.UsageMessage
	records map[string]*model.WrappedRecord // 按ID索引
	images  map[string]*model.StoredImage
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewRepository 创建新的数据仓库
func NewRepository() *Repository {
	return &Repository{
		records: make(map[string]*model.WrappedRecord),
		images:  make(map[string]*model.StoredImage),
		now:     time.Now,
	}
}

// SaveUsage 保存一条消息用量
func (r *Repository) SaveUsage(ctx context.Context, msg *model.UsageMessage) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = r.now()
	}
	if msg.TotalTokens == 0 {
		msg.TotalTokens = msg.PromptTokens + msg.CompletionTokens
	}

	r.usage = append(r.usage, *msg)
	return nil
}

// GetStats 汇总 windowStart 之后的用量
func (r *Repository) GetStats(ctx context.Context, userID string, windowStart time.Time) (model.WrappedStats, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var stats model.WrappedStats
	byModel := make(map[string]int64)
	byProvider := make(map[string]int64)

	for _, m := range r.usage {
		if m.UserID != userID || m.CreatedAt.Before(windowStart) {
			continue
		}
		stats.TotalTokens += m.TotalTokens
		stats.PromptTokens += m.PromptTokens
		stats.CompletionTokens += m.CompletionTokens
		stats.TotalMessages++
		stats.Cost += m.Cost
		if m.Model != "" {
			byModel[m.Model] += m.TotalTokens
		}
		if m.Provider != "" {
			byProvider[m.Provider] += m.TotalTokens
		}
	}

	for _, e := range topEntries(byModel) {
		stats.TopModels = append(stats.TopModels, model.ModelUsage{Model: e.name, Tokens: e.tokens})
	}
	for _, e := range topEntries(byProvider) {
		stats.TopProviders = append(stats.TopProviders, model.ProviderUsage{Provider: e.name, Tokens: e.tokens})
	}

	return stats, nil
}

type entry struct {
	name   string
	tokens int64
}

// topEntries 按用量降序、名称升序取前 model.TopUsageLimit 个
func topEntries(m map[string]int64) []entry {
	entries := make([]entry, 0, len(m))
	for name, tokens := range m {
		entries = append(entries, entry{name: name, tokens: tokens})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].tokens != entries[j].tokens {
			return entries[i].tokens > entries[j].tokens
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > model.TopUsageLimit {
		entries = entries[:model.TopUsageLimit]
	}
	return entries
}

// GetActiveUsers 返回 cutoff 之后有消息的用户
func (r *Repository) GetActiveUsers(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[string]bool)
	users := make([]string, 0)
	for _, m := range r.usage {
		if m.CreatedAt.Before(cutoff) || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		users = append(users, m.UserID)
	}
	sort.Strings(users)
	return users, nil
}

// CreateWrappedRecord 保存 wrapped 记录
func (r *Repository) CreateWrappedRecord(ctx context.Context, record *model.WrappedRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// 生成ID
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	r.records[record.ID] = cloneRecord(record)
	return nil
}

// ExistsForDate 用户当天是否已有记录
func (r *Repository) ExistsForDate(ctx context.Context, userID, date string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// DeleteExpired 删除 cutoff 之前创建的记录
func (r *Repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var deleted int64
	for id, rec := range r.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// GetLatestWrapped 返回用户最新的记录，没有时返回 nil
func (r *Repository) GetLatestWrapped(ctx context.Context, userID string) (*model.WrappedRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var latest *model.WrappedRecord
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneRecord(latest), nil
}

// ListWrapped 返回全部记录，按创建时间排序
func (r *Repository) ListWrapped(ctx context.Context) ([]*model.WrappedRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*model.WrappedRecord, 0, len(r.records))
	for _, rec := range r.records {
		result = append(result, cloneRecord(rec))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Store 保存图片，返回存储ID
func (r *Repository) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	img := &model.StoredImage{
		ID:          uuid.New().String(),
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
		Size:        len(data),
		CreatedAt:   r.now(),
	}
	r.images[img.ID] = img
	return img.ID, nil
}

// GetImage 读取图片，不存在时返回 nil
func (r *Repository) GetImage(ctx context.Context, id string) (*model.StoredImage, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	img, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

// DeleteBefore 删除 cutoff 之前保存的图片
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var deleted int64
	for id, img := range r.images {
		if img.CreatedAt.Before(cutoff) {
			delete(r.images, id)
			deleted++
		}
	}
	return deleted, nil
}

func cloneRecord(rec *model.WrappedRecord) *model.WrappedRecord {
	cp := *rec
	if rec.ImageStorageID != nil {
		id := *rec.ImageStorageID
		cp.ImageStorageID = &id
	}
	cp.Stats.TopModels = append([]model.ModelUsage(nil), rec.Stats.TopModels...)
	cp.Stats.TopProviders = append([]model.ProviderUsage(nil), rec.Stats.TopProviders...)
	return &cp
}
