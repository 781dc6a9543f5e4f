package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/carelens/carelens/internal/assist/audit"
	"github.com/carelens/carelens/internal/assist/preview"
	"github.com/carelens/carelens/internal/core/domain"
)

// previewSession holds one session's preview record together with its audit
// trail and the running index for appended confirmation events. Sessions live
// only in memory; restarting the server discards them, which is the intended
// lifetime for confirmation proposals.
type previewSession struct {
	record    domain.PreviewConfirmationRecord
	events    []domain.PreviewAuditEvent
	messageID string
	intent    domain.IntentBucket
	nextIndex int
}

// PreviewStore is an in-memory, mutex-guarded map of live preview sessions
// keyed by preview ID.
type PreviewStore struct {
	mu       sync.RWMutex
	sessions map[string]*previewSession
}

// NewPreviewStore returns an empty store.
func NewPreviewStore() *PreviewStore {
	return &PreviewStore{sessions: make(map[string]*previewSession)}
}

// Put registers a freshly created preview record with its audit trail. Event
// indices for later confirmation events continue where the trail left off.
func (s *PreviewStore) Put(messageID string, intent domain.IntentBucket, rec domain.PreviewConfirmationRecord, trail []domain.PreviewAuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.PreviewID] = &previewSession{
		record:    rec,
		events:    append([]domain.PreviewAuditEvent(nil), trail...),
		messageID: messageID,
		intent:    intent,
		nextIndex: len(trail),
	}
}

// Get returns the record and audit events for a preview ID.
func (s *PreviewStore) Get(previewID string) (domain.PreviewConfirmationRecord, []domain.PreviewAuditEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[previewID]
	if !ok {
		return domain.PreviewConfirmationRecord{}, nil, false
	}
	return sess.record, append([]domain.PreviewAuditEvent(nil), sess.events...), true
}

// Transition moves a preview to a terminal state and appends the matching
// confirmation audit event. Invalid transitions return the preview package's
// sentinel unwrapped for callers to branch on.
func (s *PreviewStore) Transition(previewID string, target domain.PreviewState, actorRole string, now time.Time) (domain.PreviewConfirmationRecord, domain.PreviewAuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[previewID]
	if !ok {
		return domain.PreviewConfirmationRecord{}, domain.PreviewAuditEvent{}, fmt.Errorf("preview %q not found", previewID)
	}

	next, err := preview.Transition(sess.record, target, now)
	if err != nil {
		return domain.PreviewConfirmationRecord{}, domain.PreviewAuditEvent{}, err
	}

	evType := domain.AuditConfirmationAcknowledged
	if target == domain.StatePreviewDenied {
		evType = domain.AuditConfirmationDenied
	}
	event := audit.CreateConfirmationEvent(sess.messageID, sess.nextIndex, evType, actorRole, sess.intent, now)

	sess.record = next
	sess.events = append(sess.events, event)
	sess.nextIndex++

	return next, event, nil
}
