package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-simulator/internal/models"
	"alfredoptarigan/interview-simulator/internal/repositories"
	"alfredoptarigan/interview-simulator/internal/services"
)

func newTestStore() (services.SetupStore, *repositories.MemoryKVStore) {
	kv := repositories.NewMemoryKVStore()
	return services.NewSetupStore(kv, services.NewAttachmentCodec()), kv
}

func testSetup() *models.JobSetup {
	return &models.JobSetup{
		Title:            "Backend Engineer",
		Responsibilities: "Build APIs",
		Requirements:     "3+ yrs Go",
		Language:         models.LanguageEN,
		Attachment: &models.Attachment{
			Filename: "resume.pdf",
			MimeType: "application/pdf",
			Data:     []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0x01},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore()

	original := testSetup()
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.Title, loaded.Title)
	assert.Equal(t, original.Responsibilities, loaded.Responsibilities)
	assert.Equal(t, original.Requirements, loaded.Requirements)
	assert.Equal(t, original.Language, loaded.Language)
	require.NotNil(t, loaded.Attachment)
	assert.Equal(t, original.Attachment.Data, loaded.Attachment.Data)
	assert.Equal(t, original.Attachment.Filename, loaded.Attachment.Filename)
	assert.Equal(t, original.Attachment.MimeType, loaded.Attachment.MimeType)
}

func TestSaveRequiresAttachment(t *testing.T) {
	store, kv := newTestStore()

	setup := testSetup()
	setup.Attachment = nil

	err := store.Save(setup)
	require.ErrorIs(t, err, services.ErrAttachmentRequired)

	_, ok, _ := kv.Get(services.SetupSlotKey)
	assert.False(t, ok)
}

func TestLoadWithoutPriorSave(t *testing.T) {
	store, _ := newTestStore()

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadDiscardsCorruptRecord(t *testing.T) {
	store, kv := newTestStore()

	require.NoError(t, kv.Set(services.SetupSlotKey, "{not valid json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, ok, err := kv.Get(services.SetupSlotKey)
	require.NoError(t, err)
	assert.False(t, ok, "corrupt slot should have been removed")
}

func TestLoadDiscardsRecordWithBadAttachment(t *testing.T) {
	store, kv := newTestStore()

	require.NoError(t, kv.Set(services.SetupSlotKey,
		`{"title":"x","responsibilities":"y","requirements":"z","language":"en","attachment":{"filename":"resume.pdf","mime_type":"application/pdf","base64_payload":"@@not-base64@@"}}`))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, ok, _ := kv.Get(services.SetupSlotKey)
	assert.False(t, ok)
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newTestStore()

	require.NoError(t, store.Save(testSetup()))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveOverwritesPriorValue(t *testing.T) {
	store, _ := newTestStore()

	first := testSetup()
	require.NoError(t, store.Save(first))

	second := testSetup()
	second.Title = "Platform Engineer"
	second.Attachment.Data = []byte("updated resume content")
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Platform Engineer", loaded.Title)
	assert.Equal(t, second.Attachment.Data, loaded.Attachment.Data)
}
