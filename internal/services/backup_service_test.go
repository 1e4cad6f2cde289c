package services

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/repositories"
	"service-tracker/pkg/constants"
	"service-tracker/pkg/filestorage"
)

func newBackup(t *testing.T, store repositories.StoreInterface, archive filestorage.FileStorageInterface) (BackupServiceInterface, *Workspace) {
	t.Helper()
	w := newWorkspace(t, store)
	require.NoError(t, w.Load(context.Background()))
	return NewBackupService(w, store, archive, zap.NewNop()), w
}

func snapshotKeys(t *testing.T, store repositories.StoreInterface) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, key := range []string{constants.StoreKeyServices, constants.StoreKeyNotes, constants.StoreKeyMissingParts, constants.StoreKeyServiceOrder} {
		blob, found, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		if found {
			out[key] = string(blob)
		}
	}
	return out
}

func TestExport_CanonicalFieldsOnly(t *testing.T) {
	store := repositories.NewMemoryStore()
	seed(t, store, constants.StoreKeyServices, `[{"id":"a","phoneNumber":"0555","description":"eski","feeCollected":100,"status":"completed","date":"2024-01-01","partsChanged":"ekran"}]`)
	seed(t, store, constants.StoreKeyMissingParts, `["kablo"]`)

	dir := t.TempDir()
	archive, err := filestorage.NewLocalFileStorage(dir)
	require.NoError(t, err)
	svc, _ := newBackup(t, store, archive)

	data, err := svc.Export(context.Background())
	require.NoError(t, err)

	var backup map[string]any
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, "2024-03-15T09:30:00.000Z", backup["exportDate"])
	assert.Equal(t, []any{"kablo"}, backup["missingParts"])
	assert.Equal(t, []any{}, backup["notes"])

	services := backup["services"].([]any)
	require.Len(t, services, 1)
	rec := services[0].(map[string]any)
	assert.Equal(t, "0555", rec["customerPhone"])
	assert.Equal(t, "eski", rec["address"])
	assert.Equal(t, float64(100), rec["cost"])
	assert.Equal(t, "2024-01-01", rec["createdAt"])
	assert.NotContains(t, rec, "phoneNumber")
	assert.NotContains(t, rec, "partsChanged")

	matches, err := filepath.Glob(filepath.Join(dir, "exports", "*", "*", "*", "boltyedek-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	archived, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, data, archived)
}

func TestImport_RoundTrip(t *testing.T) {
	source := repositories.NewMemoryStore()
	seed(t, source, constants.StoreKeyServices, `[{"id":"a","customerPhone":"0555","cost":10,"status":"ongoing"},{"id":"b","status":"completed"}]`)
	seed(t, source, constants.StoreKeyNotes, `[{"id":"note_1","title":"t","content":"c","date":"2024-01-01"}]`)
	exporter, _ := newBackup(t, source, nil)
	data, err := exporter.Export(context.Background())
	require.NoError(t, err)

	target := repositories.NewMemoryStore()
	importer, w := newBackup(t, target, nil)
	result, err := importer.Import(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Services)
	assert.Equal(t, 1, result.Notes)
	assert.ElementsMatch(t, []string{constants.StoreKeyServices, constants.StoreKeyNotes, constants.StoreKeyMissingParts}, result.WrittenKeys)

	list, err := w.Services()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "0555", list[0].PhoneNumber)
}

func TestImport_WrappedAndPartial(t *testing.T) {
	store := repositories.NewMemoryStore()
	seed(t, store, constants.StoreKeyNotes, `[{"id":"keep"}]`)
	svc, w := newBackup(t, store, nil)

	result, err := svc.Import(context.Background(), []byte(`{"data":{"services":[{"id":"x"}],"notes":null}}`))
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportResultDTO{Services: 1, WrittenKeys: []string{constants.StoreKeyServices}}, result)

	notes, err := w.Notes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "keep", notes[0].ID)
}

func TestImport_MalformedTouchesNothing(t *testing.T) {
	store := repositories.NewMemoryStore()
	seed(t, store, constants.StoreKeyServices, `[{"id":"a"}]`)
	seed(t, store, constants.StoreKeyNotes, `[]`)
	seed(t, store, constants.StoreKeyServiceOrder, `[{"id":"a","order":0}]`)
	svc, _ := newBackup(t, store, nil)
	before := snapshotKeys(t, store)

	for _, payload := range []string{`{"services": [`, `not json`, `[1,2,3]`, `null`} {
		_, err := svc.Import(context.Background(), []byte(payload))
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err), payload)
		assert.Equal(t, before, snapshotKeys(t, store), payload)
	}
}

func TestImport_NonArrayValuesKeepStoredData(t *testing.T) {
	store := repositories.NewMemoryStore()
	seed(t, store, constants.StoreKeyServices, `[{"id":"a"}]`)
	seed(t, store, constants.StoreKeyMissingParts, `["kablo"]`)
	svc, w := newBackup(t, store, nil)

	result, err := svc.Import(context.Background(), []byte(`{"services": false, "missingParts": "", "notes": [{"id":"note_1","title":"t"}]}`))
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportResultDTO{Notes: 1, WrittenKeys: []string{constants.StoreKeyNotes}}, result)

	blob, found, err := store.Get(context.Background(), constants.StoreKeyServices)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"id":"a"}]`, string(blob))

	list, err := w.Services()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	parts, err := w.MissingParts()
	require.NoError(t, err)
	assert.Equal(t, []string{"kablo"}, parts)
}

func TestImport_NonObjectDataFallsBackToFlat(t *testing.T) {
	for _, payload := range []string{`{"data": 0, "services": [{"id":"x"}]}`, `{"data": 5, "services": [{"id":"x"}]}`} {
		store := repositories.NewMemoryStore()
		seed(t, store, constants.StoreKeyServices, `[{"id":"a"}]`)
		svc, w := newBackup(t, store, nil)

		result, err := svc.Import(context.Background(), []byte(payload))
		require.NoError(t, err, payload)
		assert.Equal(t, 1, result.Services, payload)

		list, err := w.Services()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "x", list[0].ID, payload)
	}
}

func TestImport_StoreFailure(t *testing.T) {
	store := &flakyStore{MemoryStore: repositories.NewMemoryStore()}
	svc, _ := newBackup(t, store, nil)
	store.failSet = true

	_, err := svc.Import(context.Background(), []byte(`{"services":[]}`))
	assert.ErrorIs(t, err, errBroken)
}
