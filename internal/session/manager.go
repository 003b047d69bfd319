package session

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accountshop/internal/models"
)

// Values holds the temp form data collected across a flow.
type Values map[string]string

// Manager persists per-user conversation state in the shop database so a
// restart keeps in-flight flows, and stale sessions expire instead of
// lingering forever.
type Manager struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewManager(db *gorm.DB, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{db: db, ttl: ttl}
}

// Get returns the user's current state and values. Expired or missing
// sessions read as idle.
func (m *Manager) Get(userID int64) (State, Values, error) {
	var row models.Session
	err := m.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StateIdle, Values{}, nil
	}
	if err != nil {
		return StateIdle, nil, err
	}
	if row.ExpiresAt > 0 && row.ExpiresAt < time.Now().Unix() {
		_ = m.Clear(userID)
		return StateIdle, Values{}, nil
	}

	values := Values{}
	if row.Data != "" {
		if err := json.Unmarshal([]byte(row.Data), &values); err != nil {
			values = Values{}
		}
	}
	return State(row.State), values, nil
}

// Set stores the state and values, refreshing the TTL.
func (m *Manager) Set(userID int64, state State, values Values) error {
	data := "{}"
	if len(values) > 0 {
		raw, err := json.Marshal(values)
		if err != nil {
			return err
		}
		data = string(raw)
	}
	now := time.Now()
	row := models.Session{
		UserID:    userID,
		State:     string(state),
		Data:      data,
		ExpiresAt: now.Add(m.ttl).Unix(),
		UpdatedAt: now.Unix(),
	}
	return m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"state":      row.State,
			"data":       row.Data,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
}

// Advance moves the user along the transition table, keeping the collected
// values. It fails when the current state has no follow-up step.
func (m *Manager) Advance(userID int64, values Values) (State, error) {
	state, current, err := m.stateAndValues(userID)
	if err != nil {
		return StateIdle, err
	}
	next, ok := Next(state)
	if !ok {
		return StateIdle, errors.New("session: no transition from current state")
	}
	for k, v := range values {
		current[k] = v
	}
	if err := m.Set(userID, next, current); err != nil {
		return StateIdle, err
	}
	return next, nil
}

func (m *Manager) stateAndValues(userID int64) (State, Values, error) {
	state, values, err := m.Get(userID)
	if err != nil {
		return StateIdle, nil, err
	}
	if values == nil {
		values = Values{}
	}
	return state, values, nil
}

// Clear drops the user's session.
func (m *Manager) Clear(userID int64) error {
	return m.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// ExpireStale removes every session past its deadline and returns the count.
func (m *Manager) ExpireStale() (int64, error) {
	res := m.db.Where("expires_at > 0 AND expires_at < ?", time.Now().Unix()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
