package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

type Store struct {
	client *firestore.Client
}

var _ domain.SessionStore = (*Store)(nil)

// NewStore creates a Firestore store for the given project (GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("questionnaire_sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

type sessionDoc struct {
	CurrentQuestionIndex  int           `firestore:"current_question_index"`
	Responses             []responseDoc `firestore:"responses"`
	Completed             bool          `firestore:"completed"`
	AwaitingClarification bool          `firestore:"awaiting_clarification"`
	CreatedAt             time.Time     `firestore:"created_at"`
	UpdatedAt             time.Time     `firestore:"updated_at"`
}

type responseDoc struct {
	QuestionID string      `firestore:"question_id"`
	Value      interface{} `firestore:"value"`
	Timestamp  string      `firestore:"timestamp"`
}

func toDoc(session *domain.SessionState) sessionDoc {
	doc := sessionDoc{
		CurrentQuestionIndex:  session.CurrentQuestionIndex,
		Completed:             session.Completed,
		AwaitingClarification: session.AwaitingClarification,
		CreatedAt:             session.CreatedAt,
		UpdatedAt:             session.UpdatedAt,
	}
	for _, r := range session.Responses {
		doc.Responses = append(doc.Responses, responseDoc{
			QuestionID: string(r.QuestionID),
			Value:      r.Value.Raw(),
			Timestamp:  r.Timestamp,
		})
	}
	return doc
}

func fromDoc(id domain.SessionID, doc sessionDoc) *domain.SessionState {
	session := &domain.SessionState{
		ID:                    id,
		CurrentQuestionIndex:  doc.CurrentQuestionIndex,
		Completed:             doc.Completed,
		AwaitingClarification: doc.AwaitingClarification,
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
	}
	for _, r := range doc.Responses {
		session.Responses = append(session.Responses, domain.UserResponse{
			QuestionID: domain.QuestionID(r.QuestionID),
			Value:      domain.ValueFromAny(r.Value),
			Timestamp:  r.Timestamp,
		})
	}
	return session
}

func (s *Store) CreateSession(ctx context.Context, session *domain.SessionState) error {
	_, err := s.sessionDoc(session.ID).Create(ctx, toDoc(session))
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("firestore CreateSession %s: %w", session.ID, domain.ErrSessionExists)
	}
	if err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

// UpdateSession overwrites the whole document; it fails for unknown ids.
func (s *Store) UpdateSession(ctx context.Context, session *domain.SessionState) error {
	ref := s.sessionDoc(session.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, toDoc(session))
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("firestore UpdateSession %s: %w", session.ID, domain.ErrSessionNotFound)
	}
	if err != nil {
		return fmt.Errorf("firestore UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.SessionState, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("firestore GetSession %s: %w", id, domain.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}
	return fromDoc(id, doc), nil
}

func (s *Store) ListSessions(ctx context.Context, limit int) ([]*domain.SessionState, error) {
	q := s.sessionsCol().OrderBy("updated_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.SessionState
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore ListSessions: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode sessionDoc: %w", err)
		}
		out = append(out, fromDoc(domain.SessionID(snap.Ref.ID), doc))
	}
	return out, nil
}
