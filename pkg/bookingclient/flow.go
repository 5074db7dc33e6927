package bookingclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoSlotSelected means Submit was called before a slot was chosen.
	ErrNoSlotSelected = errors.New("bookingclient: no slot selected")
	// ErrSlotNotOffered means SelectSlot was called with a slot that is
	// not in the currently loaded list.
	ErrSlotNotOffered = errors.New("bookingclient: slot not in current list")
)

// slotsFetcher is the part of Client the flow needs.
type slotsFetcher interface {
	GetSlots(ctx context.Context, slug, date string) ([]TimeSlot, error)
	CreateBooking(ctx context.Context, slug string, start time.Time, contact ContactDetails) (*Booking, error)
}

// SelectionFlow tracks the date/slot selection state for one booking
// attempt. Selecting a date invalidates any in-flight slot fetch: each
// fetch is tagged with a sequence number and a response whose sequence no
// longer matches the current selection is discarded, so a slow response
// for a previously selected date can never overwrite the list for the
// current one.
type SelectionFlow struct {
	client slotsFetcher
	slug   string

	mu           sync.Mutex
	seq          uint64
	selectedDate string
	slots        []TimeSlot
	selectedSlot *TimeSlot
}

func NewSelectionFlow(client *Client, slug string) *SelectionFlow {
	return &SelectionFlow{client: client, slug: slug}
}

// SelectDate switches the flow to a new date. Any previously selected slot
// is cleared immediately, before the fetch; a half-switched state where the
// old slot survives under the new date is never observable. A fetch failure
// leaves the date selected with an empty slot list.
func (f *SelectionFlow) SelectDate(ctx context.Context, date string) error {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.selectedDate = date
	f.selectedSlot = nil
	f.slots = nil
	f.mu.Unlock()

	slots, err := f.client.GetSlots(ctx, f.slug, date)
	if err != nil {
		var transient *TransientError
		if errors.As(err, &transient) {
			// Degrade to an empty list rather than failing the flow.
			return nil
		}
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		// The user moved on to another date while this fetch was in
		// flight; drop the stale result.
		return nil
	}
	f.slots = slots
	return nil
}

// SelectSlot marks one of the currently offered slots as chosen.
func (f *SelectionFlow) SelectSlot(slot TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.slots {
		if f.slots[i].StartTime.Equal(slot.StartTime) {
			f.selectedSlot = &f.slots[i]
			return nil
		}
	}
	return ErrSlotNotOffered
}

// Slots returns the slot list for the currently selected date.
func (f *SelectionFlow) Slots() []TimeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]TimeSlot, len(f.slots))
	copy(out, f.slots)
	return out
}

// SelectedDate returns the active date, or "" if none selected yet.
func (f *SelectionFlow) SelectedDate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectedDate
}

// SelectedSlot returns the chosen slot, or nil.
func (f *SelectionFlow) SelectedSlot() *TimeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectedSlot == nil {
		return nil
	}
	s := *f.selectedSlot
	return &s
}

// Submit books the selected slot. On a slot conflict the selection is
// cleared so the caller re-fetches and picks again; the stale slot must
// not remain selectable.
func (f *SelectionFlow) Submit(ctx context.Context, contact ContactDetails) (*Booking, error) {
	f.mu.Lock()
	if f.selectedSlot == nil {
		f.mu.Unlock()
		return nil, ErrNoSlotSelected
	}
	start := f.selectedSlot.StartTime
	f.mu.Unlock()

	booking, err := f.client.CreateBooking(ctx, f.slug, start, contact)
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			f.mu.Lock()
			f.selectedSlot = nil
			f.mu.Unlock()
		}
		return nil, err
	}
	return booking, nil
}
