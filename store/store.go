package store

import (
	"errors"
	"time"

	"github.com/uvolink/uvolink/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Session is the persisted account session: device id and tokens. With a
// stored rmtoken a Kia login skips the otp exchange; a stored bearer
// token lets a telematics client resume without re-login.
type Session struct {
	Brand        string `gorm:"primaryKey"`
	Username     string `gorm:"primaryKey"`
	DeviceID     string
	RefreshToken string
	AccessToken  string
	Expiry       time.Time
	UpdatedAt    time.Time
}

// Store persists account sessions in sqlite
type Store struct {
	db *gorm.DB
}

// Open creates or opens the session database
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Logger = &adapter{log: util.NewLogger("sqlite")}

	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Load returns the stored session for the account, if any
func (s *Store) Load(brand, username string) (Session, bool, error) {
	var res Session

	tx := s.db.Where(&Session{Brand: brand, Username: username}).First(&res)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return Session{}, false, nil
	}

	return res, tx.Error == nil, tx.Error
}

// Save upserts the account session
func (s *Store) Save(session Session) error {
	session.UpdatedAt = time.Now()

	tx := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand"}, {Name: "username"}},
		UpdateAll: true,
	}).Create(&session)

	return tx.Error
}

// Delete removes the account session, forcing a full login next time
func (s *Store) Delete(brand, username string) error {
	tx := s.db.Delete(&Session{Brand: brand, Username: username})
	return tx.Error
}
