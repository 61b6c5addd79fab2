package usecase

import (
	"context"
	"testing"

	"content-indexer/domain"
	"content-indexer/driver"
	"content-indexer/gateway"
	"content-indexer/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	publishP1 = `{"event":"entry.published","data":{"entry":{"uid":"p1","title":"Red Sneakers","locale":"en-us","description":"great for rain"},"content_type":{"uid":"product"}}}`
	publishP2 = `{"event":"entry.published","data":{"entry":{"uid":"p2","title":"Blue Hat","locale":"en-us","description":"warm"},"content_type":{"uid":"product"}}}`
	deleteP1  = `{"event":"entry.deleted","data":{"entry":{"uid":"p1"},"content_type":{"uid":"product"}}}`
)

func newMemoryIndex() *gateway.ContentIndexGateway {
	return gateway.NewContentIndexGateway(driver.NewMemoryIndexDriver())
}

func TestHandleWebhookUsecase_Execute_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockContentIndex(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)

	stats := domain.IndexStats{TotalEntries: 1, ContentTypes: []string{"product"}, Locales: []string{"en-us"}}
	gomock.InOrder(
		index.EXPECT().Put(gomock.Any()).Do(func(e domain.Entry) {
			assert.Equal(t, "p1", e.UID)
			assert.Equal(t, "Red Sneakers", e.Title)
			assert.Equal(t, "product", e.ContentTypeUID)
		}),
		index.EXPECT().Stats().Return(stats),
		notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev domain.ChangeEvent) {
			assert.Equal(t, domain.ChangeEntryUpsert, ev.Type)
			assert.Equal(t, "p1", ev.UID)
			assert.Equal(t, stats, ev.Stats)
		}),
	)

	u := NewHandleWebhookUsecase(index, nil, notifier)
	res, err := u.Execute(context.Background(), []byte(publishP1))
	require.NoError(t, err)

	assert.Equal(t, domain.ShapeCMSWebhook, res.Shape)
	assert.Equal(t, domain.MutationUpsert, res.Action)
	assert.Equal(t, domain.EventEntryPublished, res.Event)
	assert.Equal(t, "p1", res.UID)
	assert.Equal(t, stats, res.Stats)
}

func TestHandleWebhookUsecase_Execute_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockContentIndex(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)

	index.EXPECT().Remove("p1").Return(true)
	index.EXPECT().Stats().Return(domain.EmptyStats())
	notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev domain.ChangeEvent) {
		assert.Equal(t, domain.ChangeEntryRemoved, ev.Type)
		assert.Nil(t, ev.Entry)
	})

	u := NewHandleWebhookUsecase(index, nil, notifier)
	res, err := u.Execute(context.Background(), []byte(deleteP1))
	require.NoError(t, err)
	assert.Equal(t, domain.MutationRemove, res.Action)
	assert.True(t, res.Removed)
}

func TestHandleWebhookUsecase_Execute_Ignored(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockContentIndex(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)

	// Only the stats read is allowed; no mutation, no notification.
	index.EXPECT().Stats().Return(domain.EmptyStats())

	u := NewHandleWebhookUsecase(index, nil, notifier)
	res, err := u.Execute(context.Background(), []byte(`{"event":"asset.published","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.MutationIgnore, res.Action)
	assert.Equal(t, "asset.published", res.Event)
}

func TestHandleWebhookUsecase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "unknown shape", body: `{"foo":"bar"}`, wantErr: domain.ErrUnknownPayloadShape},
		{name: "invalid json", body: `not json`, wantErr: domain.ErrMalformedPayload},
		{name: "missing uid", body: `{"event":"entry.published","data":{"entry":{},"content_type":{"uid":"product"}}}`, wantErr: domain.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// No calls are expected on either mock.
			index := mocks.NewMockContentIndex(ctrl)
			notifier := mocks.NewMockChangeNotifier(ctrl)

			u := NewHandleWebhookUsecase(index, nil, notifier)
			res, err := u.Execute(context.Background(), []byte(tt.body))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHandleWebhookUsecase_IdempotentReplace(t *testing.T) {
	index := newMemoryIndex()
	u := NewHandleWebhookUsecase(index, nil, nil)
	ctx := context.Background()

	_, err := u.Execute(ctx, []byte(publishP1))
	require.NoError(t, err)
	before := index.Stats().TotalEntries

	res, err := u.Execute(ctx, []byte(`{"event":"entry.updated","data":{"entry":{"uid":"p1","title":"Red Sneakers v2","locale":"en-us"},"content_type":{"uid":"product"}}}`))
	require.NoError(t, err)

	assert.Equal(t, before, res.Stats.TotalEntries)
	all := index.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Red Sneakers v2", all[0].Title)
	assert.NotContains(t, all[0].Fields, "description")
}

func TestHandleWebhookUsecase_DeleteRemovesExactlyOne(t *testing.T) {
	index := newMemoryIndex()
	u := NewHandleWebhookUsecase(index, nil, nil)
	ctx := context.Background()

	for _, body := range []string{publishP1, publishP2} {
		_, err := u.Execute(ctx, []byte(body))
		require.NoError(t, err)
	}

	res, err := u.Execute(ctx, []byte(deleteP1))
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Equal(t, 1, res.Stats.TotalEntries)
	for _, e := range index.All() {
		assert.NotEqual(t, "p1", e.UID)
	}

	res, err = u.Execute(ctx, []byte(deleteP1))
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 1, res.Stats.TotalEntries)
}

func TestHandleWebhookUsecase_AllShapesIndexTheSameEntry(t *testing.T) {
	bodies := map[string]string{
		"cms":    `{"event":"entry.published","data":{"entry":{"uid":"x1","title":"Same","locale":"en-us"},"content_type":{"uid":"page"}}}`,
		"flat":   `{"event_type":"entry.published","content_type_uid":"page","entry_uid":"x1","data":{"title":"Same","locale":"en-us"}}`,
		"module": `{"module":"entry","event":"publish","data":{"locale":"en-us","entry":{"uid":"x1","title":"Same","content_type":{"uid":"page"}}}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			index := newMemoryIndex()
			u := NewHandleWebhookUsecase(index, nil, nil)

			_, err := u.Execute(context.Background(), []byte(body))
			require.NoError(t, err)

			all := index.All()
			require.Len(t, all, 1)
			assert.Equal(t, "x1", all[0].UID)
			assert.Equal(t, "Same", all[0].Title)
			assert.Equal(t, "page", all[0].ContentTypeUID)
			assert.Equal(t, "en-us", all[0].Locale)
		})
	}
}
