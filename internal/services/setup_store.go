package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"alfredoptarigan/interview-simulator/internal/models"
	"alfredoptarigan/interview-simulator/internal/repositories"
)

// SetupSlotKey is the single named slot holding the persisted setup.
const SetupSlotKey = "interview_setup"

// ErrAttachmentRequired is returned by Save when the setup has no resume
// attached. Callers must check before saving.
var ErrAttachmentRequired = errors.New("resume attachment is required to save setup")

// SetupStore persists the interview setup form to durable local storage.
// Load returns (nil, nil) when no setup has been saved; a corrupt record is
// discarded and reported the same way, never as an error.
type SetupStore interface {
	Save(setup *models.JobSetup) error
	Load() (*models.JobSetup, error)
	Clear() error
}

type setupStore struct {
	kv    repositories.KVStore
	codec AttachmentCodec
}

func NewSetupStore(kv repositories.KVStore, codec AttachmentCodec) SetupStore {
	return &setupStore{kv: kv, codec: codec}
}

type savedSetup struct {
	Title            string                    `json:"title"`
	Responsibilities string                    `json:"responsibilities"`
	Requirements     string                    `json:"requirements"`
	Language         models.Language           `json:"language"`
	Attachment       *models.EncodedAttachment `json:"attachment"`
}

// Save implements SetupStore. The whole record is written to one slot,
// overwriting any prior value.
func (s *setupStore) Save(setup *models.JobSetup) error {
	if setup.Attachment == nil || len(setup.Attachment.Data) == 0 {
		return ErrAttachmentRequired
	}

	encoded, err := s.codec.Encode(setup.Attachment)
	if err != nil {
		return fmt.Errorf("failed to encode attachment: %w", err)
	}

	record := savedSetup{
		Title:            setup.Title,
		Responsibilities: setup.Responsibilities,
		Requirements:     setup.Requirements,
		Language:         setup.Language,
		Attachment:       encoded,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize setup: %w", err)
	}

	if err := s.kv.Set(SetupSlotKey, string(payload)); err != nil {
		return fmt.Errorf("failed to save setup: %w", err)
	}

	return nil
}

// Load implements SetupStore.
func (s *setupStore) Load() (*models.JobSetup, error) {
	payload, ok, err := s.kv.Get(SetupSlotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load setup: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var record savedSetup
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		s.discardCorrupt(err)
		return nil, nil
	}

	attachment, err := s.codec.Decode(record.Attachment)
	if err != nil {
		s.discardCorrupt(err)
		return nil, nil
	}

	language, err := models.ParseLanguage(string(record.Language))
	if err != nil {
		s.discardCorrupt(err)
		return nil, nil
	}

	return &models.JobSetup{
		Title:            record.Title,
		Responsibilities: record.Responsibilities,
		Requirements:     record.Requirements,
		Language:         language,
		Attachment:       attachment,
	}, nil
}

// Clear implements SetupStore. Clearing an empty slot is a no-op.
func (s *setupStore) Clear() error {
	if err := s.kv.Remove(SetupSlotKey); err != nil {
		return fmt.Errorf("failed to clear setup: %w", err)
	}
	return nil
}

func (s *setupStore) discardCorrupt(cause error) {
	log.Printf("⚠️  Discarding corrupt saved setup: %v\n", cause)
	if err := s.kv.Remove(SetupSlotKey); err != nil {
		log.Printf("⚠️  Failed to remove corrupt setup record: %v\n", err)
	}
}
