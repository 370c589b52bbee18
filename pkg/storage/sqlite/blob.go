// Package sqlite 基于 SQLite 的图片存储，适合单机部署
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"DailyWrapped/pkg/model"
)

// ErrStorageClosed 存储已关闭
var ErrStorageClosed = errors.New("图片存储已关闭")

// BlobStore SQLite 图片存储
type BlobStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// New 打开或创建数据库文件
func New(dbPath string) (*BlobStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("打开图片数据库失败: %w", err)
	}

	// SQLite 单写者
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &BlobStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建图片表失败: %w", err)
	}
	return s, nil
}

func (s *BlobStore) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wrapped_images (
		id           TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		data         BLOB NOT NULL,
		size         INTEGER NOT NULL,
		created_at   DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_images_created ON wrapped_images(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store 保存图片，返回存储ID
func (s *BlobStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrStorageClosed
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wrapped_images (id, content_type, data, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, contentType, data, len(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("保存图片失败: %w", err)
	}
	return id, nil
}

// GetImage 不存在时返回 nil, nil
func (s *BlobStore) GetImage(ctx context.Context, id string) (*model.StoredImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	var img model.StoredImage
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content_type, data, size, created_at FROM wrapped_images WHERE id = ?`, id,
	).Scan(&img.ID, &img.ContentType, &img.Data, &img.Size, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	return &img, nil
}

// DeleteBefore 删除 cutoff 之前的图片，返回删除条数
func (s *BlobStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStorageClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM wrapped_images WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("删除过期图片失败: %w", err)
	}
	return res.RowsAffected()
}

// Close 关闭数据库连接
func (s *BlobStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
