// Package postgres implements the chat store on the relational schema
// shared with the REST service, through GORM.
package postgres

import (
	"chat-live/domain"
	"chat-live/errors"
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Store struct {
	Base *gorm.DB
	log  *slog.Logger
}

// Open connects with a doubling backoff, the database container usually
// starts slower than the service.
func Open(dsn string, log *slog.Logger, attempts int, sleep time.Duration) (*Store, error) {
	base, err := openWithRetry(dsn, log, attempts, sleep)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	sqlDB, err := base.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return &Store{Base: base, log: log}, nil
}

func openWithRetry(dsn string, log *slog.Logger, attempts int, sleep time.Duration) (*gorm.DB, error) {
	var last error
	for i := 1; i <= attempts; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			sqlDB, e := db.DB()
			if e == nil {
				if e = pingWithTimeout(sqlDB, 2*time.Second); e == nil {
					return db, nil
				}
			}
			last = e
		} else {
			last = err
		}
		log.Warn("Postgres not reachable yet", "attempt", i, "error", last)
		time.Sleep(sleep)
		if sleep < 8*time.Second {
			sleep *= 2
		}
	}
	return nil, last
}

func pingWithTimeout(sqlDB *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Migrate creates the tables for local development. In production the
// schema is owned by the REST service migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return s.Base.WithContext(ctx).AutoMigrate(
		&Chat{}, &ChatParticipant{}, &ChatMessage{}, &Read{},
		&TypingIndicator{}, &User{}, &PersonalData{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.Base.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) IsParticipant(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error) {
	var exists bool
	err := s.Base.WithContext(ctx).
		Raw("SELECT EXISTS(SELECT 1 FROM chat_participants WHERE chat_id = ? AND user_id = ?)", chatID, userID).
		Scan(&exists).Error
	return exists, err
}

func (s *Store) IsChatAdmin(ctx context.Context, chatID domain.ChatID, userID domain.UserID) (bool, error) {
	var p ChatParticipant
	err := s.Base.WithContext(ctx).
		Select("is_admin").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Take(&p).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return p.IsAdmin, err
}

func (s *Store) ParticipantIDs(ctx context.Context, chatID domain.ChatID) ([]domain.UserID, error) {
	var ids []int64
	err := s.Base.WithContext(ctx).
		Model(&ChatParticipant{}).
		Where("chat_id = ?", chatID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(ids, func(id int64, _ int) domain.UserID { return domain.UserID(id) }), nil
}

func (s *Store) InsertMessage(ctx context.Context, draft domain.NewMessage) (domain.MessageID, error) {
	row := fromNewMessage(draft)
	if err := s.Base.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return domain.MessageID(row.ID), nil
}

func (s *Store) MessageWithSender(ctx context.Context, id domain.MessageID) (domain.ChatMessage, domain.SenderProfile, error) {
	var row messageWithSender
	res := s.Base.WithContext(ctx).Raw(`
		SELECT cm.id, cm.chat_id, cm.sender_id, cm.created_at, cm.updated_at,
		       cm.type_message, cm.message, cm.file_path, cm.file_name, cm.file_size,
		       cm.is_deleted, cm.reply_to_id,
		       u.id AS sender_user_id, u.email AS sender_email, u.photo AS sender_photo,
		       u.course_id AS sender_course_id, pd.full_name AS sender_full_name
		FROM chat_messages cm
		JOIN users u ON cm.sender_id = u.id
		LEFT JOIN personal_data pd ON u.id = pd.user_id
		WHERE cm.id = ?`, id).Scan(&row)
	if res.Error != nil {
		return domain.ChatMessage{}, domain.SenderProfile{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ChatMessage{}, domain.SenderProfile{}, fmt.Errorf("%w: %d with sender", errors.ErrMessageNotFound, id)
	}
	sender := domain.SenderProfile{
		ID:       domain.UserID(row.SenderUserID),
		Email:    row.SenderEmail,
		Photo:    row.SenderPhoto,
		CourseID: row.SenderCourseID,
		FullName: row.SenderFullName,
	}
	return toChatMessage(row.ChatMessage), sender, nil
}

func (s *Store) ChatIDOf(ctx context.Context, id domain.MessageID) (domain.ChatID, error) {
	var row ChatMessage
	err := s.Base.WithContext(ctx).Select("chat_id").Where("id = ?", id).Take(&row).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %d", errors.ErrMessageNotFound, id)
	}
	return domain.ChatID(row.ChatID), err
}

// UpsertReadReceipt keeps the greatest read_at ever written for the pair.
func (s *Store) UpsertReadReceipt(ctx context.Context, messageID domain.MessageID, readerID domain.UserID, at time.Time) (time.Time, error) {
	row := Read{MessageID: int64(messageID), ReaderID: int64(readerID), ReadAt: at.UTC()}
	err := s.Base.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "message_id"}, {Name: "reader_id"}},
			DoUpdates: clause.Set{{
				Column: clause.Column{Name: "read_at"},
				Value:  gorm.Expr("GREATEST(reads.read_at, EXCLUDED.read_at)"),
			}},
		},
		clause.Returning{Columns: []clause.Column{{Name: "read_at"}}},
	).Create(&row).Error
	if err != nil {
		return time.Time{}, err
	}
	return row.ReadAt.UTC(), nil
}

func (s *Store) UpsertTyping(ctx context.Context, indicator domain.TypingIndicator) error {
	row := TypingIndicator{
		ChatID:    int64(indicator.ChatID),
		UserID:    int64(indicator.UserID),
		StartedAt: indicator.StartedAt,
		ExpiresAt: indicator.ExpiresAt,
	}
	return s.Base.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"started_at", "expires_at"}),
	}).Create(&row).Error
}

func (s *Store) DeleteTyping(ctx context.Context, chatID domain.ChatID, userID domain.UserID) error {
	return s.Base.WithContext(ctx).
		Delete(&TypingIndicator{}, "chat_id = ? AND user_id = ?", chatID, userID).Error
}

// DeleteExpiredTyping removes indicators nobody stopped explicitly.
func (s *Store) DeleteExpiredTyping(ctx context.Context, now time.Time) (int64, error) {
	res := s.Base.WithContext(ctx).Delete(&TypingIndicator{}, "expires_at <= ?", now)
	return res.RowsAffected, res.Error
}

func (s *Store) Profile(ctx context.Context, userID domain.UserID) (domain.SenderProfile, error) {
	var row struct {
		ID       int64
		Email    string
		Photo    *string
		CourseID *int64
		FullName *string
	}
	res := s.Base.WithContext(ctx).Raw(`
		SELECT u.id, u.email, u.photo, u.course_id, pd.full_name
		FROM users u
		LEFT JOIN personal_data pd ON u.id = pd.user_id
		WHERE u.id = ?`, userID).Scan(&row)
	if res.Error != nil {
		return domain.SenderProfile{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.SenderProfile{}, fmt.Errorf("%w: %d", errors.ErrUserNotFound, userID)
	}
	return domain.SenderProfile{
		ID:       domain.UserID(row.ID),
		Email:    row.Email,
		Photo:    row.Photo,
		CourseID: row.CourseID,
		FullName: row.FullName,
	}, nil
}
