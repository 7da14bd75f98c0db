package reporter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipeswipe/internal/client"
	"github.com/pageza/recipeswipe/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type outcomes struct {
	mu  sync.Mutex
	got map[Call]Outcome
}

func (o *outcomes) record(out Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.got == nil {
		o.got = map[Call]Outcome{}
	}
	o.got[out.Call] = out
}

func TestReportLike(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	notifier := &recordingNotifier{}
	r := New(api, notifier, nil)
	id := uuid.New()

	api.On("Interact", mock.Anything, id, true, false).Return(nil).Once()
	api.On("Save", mock.Anything, id).Return(nil).Once()

	var res outcomes
	r.Report(context.Background(), id, true, false, res.record)
	r.Wait()

	api.AssertExpectations(t)
	require.Len(t, res.got, 2)
	assert.NoError(t, res.got[CallInteract].Err)
	assert.NoError(t, res.got[CallSave].Err)
	assert.Equal(t, []string{MsgSaved}, notifier.successes)
	assert.Empty(t, notifier.errors)
}

func TestReportPassDoesNotSave(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	r := New(api, nil, nil)
	id := uuid.New()

	api.On("Interact", mock.Anything, id, false, false).Return(nil).Once()

	var res outcomes
	r.Report(context.Background(), id, false, false, res.record)
	r.Wait()

	api.AssertExpectations(t)
	api.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Len(t, res.got, 1)
}

func TestReportSuperLikeSaves(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	r := New(api, nil, nil)
	id := uuid.New()

	api.On("Interact", mock.Anything, id, true, true).Return(nil).Once()
	api.On("Save", mock.Anything, id).Return(nil).Once()

	r.Report(context.Background(), id, true, true, nil)
	r.Wait()
	api.AssertExpectations(t)
}

func TestReportSaveFailureIsIndependent(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	notifier := &recordingNotifier{}
	r := New(api, notifier, nil)
	id := uuid.New()

	api.On("Interact", mock.Anything, id, true, false).Return(nil)
	api.On("Save", mock.Anything, id).Return(errors.New("boom"))

	var res outcomes
	r.Report(context.Background(), id, true, false, res.record)
	r.Wait()

	assert.NoError(t, res.got[CallInteract].Err)
	assert.EqualError(t, res.got[CallSave].Err, "boom")
	assert.Equal(t, []string{MsgSaveFail}, notifier.errors)
}

func TestReportInteractFailures(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	notifier := &recordingNotifier{}
	r := New(api, notifier, nil)
	failing, rejected := uuid.New(), uuid.New()

	api.On("Interact", mock.Anything, failing, false, false).Return(&client.APIError{StatusCode: 500, Body: "oops"})
	api.On("Interact", mock.Anything, rejected, false, false).Return(&client.APIError{StatusCode: 401, Body: "expired"})

	var res outcomes
	r.Report(context.Background(), failing, false, false, res.record)
	r.Wait()
	assert.False(t, res.got[CallInteract].Unauthorized())

	r.Report(context.Background(), rejected, false, false, res.record)
	r.Wait()
	assert.True(t, res.got[CallInteract].Unauthorized())

	assert.Equal(t, []string{MsgInteractFail, MsgLoggedOut}, notifier.errors)
}

func TestReportNoDeduplication(t *testing.T) {
	api := new(mocks.MockSwipeAPI)
	r := New(api, nil, nil)
	id := uuid.New()

	api.On("Interact", mock.Anything, id, true, false).Return(nil).Twice()
	api.On("Save", mock.Anything, id).Return(nil).Twice()

	r.Report(context.Background(), id, true, false, nil)
	r.Report(context.Background(), id, true, false, nil)
	r.Wait()
	api.AssertExpectations(t)
}
