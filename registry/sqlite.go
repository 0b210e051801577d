package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.miragespace.co/chordring/spec/protocol"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// nodeEntry stores the identifier as int64 since SQLite integers are signed.
type nodeEntry struct {
	ID           int64 `gorm:"primaryKey;autoIncrement:false"`
	Address      string
	RegisteredAt int64 `gorm:"index"`
}

func (nodeEntry) TableName() string {
	return "nodes"
}

type sqliteDirectory struct {
	reader *gorm.DB
	writer *gorm.DB
}

var _ Directory = (*sqliteDirectory)(nil)

// NewSQLiteDirectory opens or creates the node directory at dbPath.
func NewSQLiteDirectory(logger *zap.Logger, dbPath string) (Directory, error) {
	if dbPath == "" {
		return nil, errors.New("empty database path is invalid")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, err
	}

	gormLogger := zapgorm2.New(logger)
	gormLogger.IgnoreRecordNotFoundError = true
	gormLogger.SlowThreshold = time.Millisecond * 500

	reader, err := gorm.Open(openSQLite(logger, dbPath), &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening reader: %w", err)
	}
	writer, err := gorm.Open(openSQLite(logger, dbPath), &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening writer: %w", err)
	}

	// prevent SQLITE_BUSY
	writerDb, err := writer.DB()
	if err != nil {
		return nil, err
	}
	writerDb.SetMaxOpenConns(1)

	if err := writer.AutoMigrate(&nodeEntry{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &sqliteDirectory{
		reader: reader,
		writer: writer,
	}, nil
}

func (s *sqliteDirectory) Contains(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.reader.WithContext(ctx).
		Model(&nodeEntry{}).
		Where("id = ?", int64(id)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *sqliteDirectory) Append(ctx context.Context, node *protocol.Node) error {
	return s.writer.WithContext(ctx).Create(&nodeEntry{
		ID:           int64(node.GetId()),
		Address:      node.GetAddress(),
		RegisteredAt: time.Now().UnixNano(),
	}).Error
}

func (s *sqliteDirectory) List(ctx context.Context) ([]*protocol.Node, error) {
	entries := make([]nodeEntry, 0)
	err := s.reader.WithContext(ctx).
		Order("registered_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	nodes := make([]*protocol.Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, &protocol.Node{
			Id:      uint64(entry.ID),
			Address: entry.Address,
		})
	}
	return nodes, nil
}

func (s *sqliteDirectory) Close() error {
	var errs []error
	for _, db := range []*gorm.DB{s.reader, s.writer} {
		sqlDb, err := db.DB()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, sqlDb.Close())
	}
	return errors.Join(errs...)
}
