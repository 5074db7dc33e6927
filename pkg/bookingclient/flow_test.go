package bookingclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI scripts slot lists per date and lets a test gate individual
// fetches to reproduce out-of-order responses.
type fakeAPI struct {
	mu        sync.Mutex
	slots     map[string][]TimeSlot
	slotsErr  error
	createErr error
	created   []time.Time
	gates     map[string]chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		slots: map[string][]TimeSlot{},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeAPI) setSlots(date string, starts ...time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slots []TimeSlot
	for _, s := range starts {
		slots = append(slots, TimeSlot{StartTime: s, EndTime: s.Add(30 * time.Minute)})
	}
	f.slots[date] = slots
}

// gate makes the next fetch for date block until the returned channel is
// closed.
func (f *fakeAPI) gate(date string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[date] = ch
	return ch
}

func (f *fakeAPI) GetSlots(ctx context.Context, slug, date string) ([]TimeSlot, error) {
	f.mu.Lock()
	gate := f.gates[date]
	delete(f.gates, date)
	slots := f.slots[date]
	err := f.slotsErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (f *fakeAPI) CreateBooking(ctx context.Context, slug string, start time.Time, contact ContactDetails) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, start)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &Booking{StartTime: start, Status: "pending"}, nil
}

func newTestFlow(api *fakeAPI) *SelectionFlow {
	return &SelectionFlow{client: api, slug: "discovery-call"}
}

var (
	slotA = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	slotB = time.Date(2024, 6, 4, 14, 0, 0, 0, time.UTC)
)

func TestSelectDateLoadsSlots(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))

	assert.Equal(t, "2024-06-03", flow.SelectedDate())
	require.Len(t, flow.Slots(), 1)
	assert.Equal(t, slotA, flow.Slots()[0].StartTime)
}

func TestSelectDateClearsSelectedSlot(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	api.setSlots("2024-06-04", slotB)
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))
	require.NoError(t, flow.SelectSlot(TimeSlot{StartTime: slotA}))
	require.NotNil(t, flow.SelectedSlot())

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-04"))

	assert.Nil(t, flow.SelectedSlot())
}

func TestStaleSlotResponseDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	api.setSlots("2024-06-04", slotB)
	flow := newTestFlow(api)

	// The fetch for the first date stalls; meanwhile the user switches to
	// the second date, which completes normally.
	release := api.gate("2024-06-03")

	done := make(chan error, 1)
	go func() {
		done <- flow.SelectDate(context.Background(), "2024-06-03")
	}()

	// Let the slow fetch start before switching dates.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-04"))
	require.Len(t, flow.Slots(), 1)
	assert.Equal(t, slotB, flow.Slots()[0].StartTime)

	// Now the stale response arrives. It must not overwrite the list.
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "2024-06-04", flow.SelectedDate())
	require.Len(t, flow.Slots(), 1)
	assert.Equal(t, slotB, flow.Slots()[0].StartTime)
}

func TestSelectDateTransientFailureDegradesToEmpty(t *testing.T) {
	api := newFakeAPI()
	api.slotsErr = &TransientError{Err: errors.New("connection refused")}
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))

	assert.Equal(t, "2024-06-03", flow.SelectedDate())
	assert.Empty(t, flow.Slots())
}

func TestSelectDateNotFoundSurfaces(t *testing.T) {
	api := newFakeAPI()
	api.slotsErr = ErrNotFound
	flow := newTestFlow(api)

	err := flow.SelectDate(context.Background(), "2024-06-03")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectSlotNotOffered(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))

	err := flow.SelectSlot(TimeSlot{StartTime: slotB})
	assert.ErrorIs(t, err, ErrSlotNotOffered)
}

func TestSubmitWithoutSlot(t *testing.T) {
	flow := newTestFlow(newFakeAPI())

	_, err := flow.Submit(context.Background(), ContactDetails{FirstName: "Jamie", Email: "jamie@example.com"})
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestSubmitBooksSelectedSlot(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))
	require.NoError(t, flow.SelectSlot(TimeSlot{StartTime: slotA}))

	booking, err := flow.Submit(context.Background(), ContactDetails{FirstName: "Jamie", Email: "jamie@example.com"})
	require.NoError(t, err)
	assert.Equal(t, slotA, booking.StartTime)
	assert.Equal(t, []time.Time{slotA}, api.created)
}

func TestSubmitConflictClearsSelection(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	api.createErr = ErrSlotConflict
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))
	require.NoError(t, flow.SelectSlot(TimeSlot{StartTime: slotA}))

	_, err := flow.Submit(context.Background(), ContactDetails{FirstName: "Jamie", Email: "jamie@example.com"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, flow.SelectedSlot())
}

func TestSubmitValidationFailureKeepsSelection(t *testing.T) {
	api := newFakeAPI()
	api.setSlots("2024-06-03", slotA)
	api.createErr = &ValidationError{Fields: map[string]string{"email": "required"}}
	flow := newTestFlow(api)

	require.NoError(t, flow.SelectDate(context.Background(), "2024-06-03"))
	require.NoError(t, flow.SelectSlot(TimeSlot{StartTime: slotA}))

	_, err := flow.Submit(context.Background(), ContactDetails{FirstName: "Jamie"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// The user fixes the form and retries with the same slot.
	assert.NotNil(t, flow.SelectedSlot())
}
