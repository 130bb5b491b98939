package importer_test

import (
	"context"
	"sync"
	"time"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/importer"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestSync() {
	user, account := suite.createLinkedAccount()

	second := cafe()
	second.ID = "t2"
	second.Category = "TRAVEL"

	foreign := cafe()
	foreign.ID = "t-foreign"
	foreign.AccountID = "acc-2"

	provider := &fakeProvider{pages: map[string]upstream.SyncPage{
		"":         {Added: []upstream.Transaction{cafe(), foreign}, NextCursor: "cursor-1", HasMore: true},
		"cursor-1": {Added: []upstream.Transaction{second}, NextCursor: "cursor-2"},
		"cursor-2": {NextCursor: "cursor-2"},
	}}
	hook := &recordingHook{}
	syncer := importer.NewSyncer(suite.accounts, provider, suite.pipeline(importer.Reject()), hook)

	result, err := syncer.Sync(suite.ctx, user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(result.Created, 2)
	suite.Assert().Len(result.FailedInvalid, 0, "transactions of other accounts must be skipped")
	suite.Assert().Equal([]string{"", "cursor-1"}, provider.cursors)
	suite.Assert().Equal([][]int{{int(category.FoodAndDrink), int(category.Travel)}}, hook.calls)

	saved, err := suite.accounts.Get(suite.ctx, user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("cursor-2", saved.Cursor)

	// The next sync continues at the stored cursor and does not call hooks
	// when nothing was created
	result, err = syncer.SyncByID(suite.ctx, account.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(result.Created, 0)
	suite.Assert().Equal([]string{"", "cursor-1", "cursor-2"}, provider.cursors)
	suite.Assert().Len(hook.calls, 1)
}

func (suite *TestSuiteStandard) TestSyncUpstreamUnavailable() {
	user, account := suite.createLinkedAccount()

	provider := &fakeProvider{err: upstream.ErrUnavailable}
	syncer := importer.NewSyncer(suite.accounts, provider, suite.pipeline(importer.Reject()))

	_, err := syncer.Sync(suite.ctx, user.ID, account.ID)
	suite.Assert().ErrorIs(err, upstream.ErrUnavailable)

	saved, err := suite.accounts.Get(suite.ctx, user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("", saved.Cursor)
}

func (suite *TestSuiteStandard) TestSyncNotFound() {
	user, account := suite.createLinkedAccount()
	syncer := importer.NewSyncer(suite.accounts, &fakeProvider{}, suite.pipeline(importer.Reject()))

	_, err := syncer.Sync(suite.ctx, uuid.New(), account.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = syncer.Sync(suite.ctx, user.ID, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = syncer.SyncByID(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSyncConcurrent() {
	user, account := suite.createLinkedAccount()

	block := make(chan struct{})
	provider := &fakeProvider{
		block: block,
		pages: map[string]upstream.SyncPage{"": {Added: []upstream.Transaction{cafe()}, NextCursor: "cursor-1"}},
	}
	syncer := importer.NewSyncer(suite.accounts, provider, suite.pipeline(importer.Reject()))

	var wg sync.WaitGroup
	results := make([]importer.ImportResult, 5)
	errs := make([]error, 5)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = syncer.Sync(suite.ctx, user.ID, account.ID)
		}(i)
	}

	close(block)
	wg.Wait()

	created := make(map[uuid.UUID]struct{})
	for i := range results {
		suite.Require().Nil(errs[i])
		for _, id := range results[i].Created {
			created[id] = struct{}{}
		}
	}

	// However the syncs interleave, the transaction is imported once
	suite.Assert().Len(created, 1)

	found, err := suite.expenses.FindByTransactionID(suite.ctx, "t1")
	suite.Require().Nil(err)
	suite.Assert().NotNil(found)
}

func (suite *TestSuiteStandard) TestSyncCallerCanceled() {
	user, account := suite.createLinkedAccount()

	block := make(chan struct{})
	provider := &fakeProvider{
		block: block,
		pages: map[string]upstream.SyncPage{"": {Added: []upstream.Transaction{cafe()}, NextCursor: "cursor-1"}},
	}
	syncer := importer.NewSyncer(suite.accounts, provider, suite.pipeline(importer.Reject()))

	// The caller starts the sync and goes away while it is running
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	_, err := syncer.Sync(ctx, user.ID, account.ID)
	suite.Assert().ErrorIs(err, context.Canceled)

	// The sync itself still completes for everyone waiting on it
	close(block)
	suite.Assert().Eventually(func() bool {
		saved, err := suite.accounts.Get(suite.ctx, user.ID, account.ID)
		return err == nil && saved.Cursor == "cursor-1"
	}, 5*time.Second, 10*time.Millisecond)

	found, err := suite.expenses.FindByTransactionID(suite.ctx, "t1")
	suite.Require().Nil(err)
	suite.Assert().NotNil(found)
}
