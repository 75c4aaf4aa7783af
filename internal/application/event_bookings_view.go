package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

const (
	msgLoadEventsFailed = "Failed to load events."
	msgStatusUpdated    = "Status updated"
	msgUpdateFailed     = "Update failed"
	msgEventDeleted     = "Event deleted"
	msgDeleteFailed     = "Delete failed"
)

// MutationPolicy selects how update and delete outcomes drive notifications
// and reloads.
type MutationPolicy int

const (
	// MutationPolicyGated notifies success and reloads only when the API
	// accepted the mutation; otherwise an error notice is raised.
	MutationPolicyGated MutationPolicy = iota
	// MutationPolicyLegacy treats every completed HTTP exchange as a success,
	// including rejected ones. Update transport failures raise "Update
	// failed"; delete transport failures are only logged.
	MutationPolicyLegacy
)

// String returns the configuration spelling of the policy.
func (p MutationPolicy) String() string {
	if p == MutationPolicyLegacy {
		return "legacy"
	}
	return "gated"
}

// Mutation names the operation a MutationResult reports on.
type Mutation string

const (
	MutationUpdateStatus Mutation = "update_status"
	MutationDelete       Mutation = "delete"
)

// MutationResult is the structured outcome of UpdateStatus and DeleteRecord.
type MutationResult struct {
	Mutation  Mutation
	ID        int64
	Status    EventBookingStatus
	Succeeded bool
	Notified  NoticeLevel
	Reloaded  bool
	Discarded bool
	Err       error
}

// EventBookingRow is one rendered line of the admin list.
type EventBookingRow struct {
	EventBooking
	Color   string
	Actions []Action
}

// Offers reports whether the row shows action.
func (r EventBookingRow) Offers(action Action) bool {
	for _, candidate := range r.Actions {
		if candidate == action {
			return true
		}
	}
	return false
}

// EventBookingsSnapshot is the renderable state of the admin list.
type EventBookingsSnapshot struct {
	Loading bool
	Loaded  bool
	Rows    []EventBookingRow
}

// EventBookingsViewConfig wires an EventBookingsView.
type EventBookingsViewConfig struct {
	Gateway  EventBookingGateway
	Token    string
	Notifier Notifier
	Policy   MutationPolicy
	Logger   *slog.Logger
}

// EventBookingsView is the admin list of every event booking. It starts in
// the loading state and holds the last collection returned by the API.
type EventBookingsView struct {
	gateway  EventBookingGateway
	token    string
	notifier Notifier
	policy   MutationPolicy
	logger   *slog.Logger
	life     lifetime

	mu      sync.Mutex
	loading bool
	loaded  bool
	records []EventBooking
	latest  uint64
}

// NewEventBookingsView binds a view to parent; cancelling parent or calling
// Close tears the view down.
func NewEventBookingsView(parent context.Context, cfg EventBookingsViewConfig) *EventBookingsView {
	return &EventBookingsView{
		gateway:  cfg.Gateway,
		token:    cfg.Token,
		notifier: notifierOrDiscard(cfg.Notifier),
		policy:   cfg.Policy,
		logger:   defaultLogger(cfg.Logger),
		life:     newLifetime(parent),
		loading:  true,
	}
}

// Close cancels in-flight requests. Results arriving later are discarded.
func (v *EventBookingsView) Close() {
	if v == nil {
		return
	}
	v.life.close()
}

// LoadAll replaces the list with the full collection. A failure raises
// "Failed to load events." and keeps the current list. The loading flag is
// cleared once the most recent load settles.
func (v *EventBookingsView) LoadAll(ctx context.Context) {
	if v == nil {
		return
	}
	v.mu.Lock()
	v.latest++
	generation := v.latest
	v.loading = true
	v.mu.Unlock()
	defer v.settle(generation)

	if v.gateway == nil {
		return
	}
	logger := viewLogger(ctx, v.logger, "event_bookings", "load_all")
	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "skipping load for closed view")
		return
	}

	bound, release := v.life.bind(ctx)
	records, err := v.gateway.ListEventBookings(bound, v.token, EventBookingFilter{})
	release()

	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding load result for closed view")
		return
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to load event bookings", "error", err, "error_kind", ErrorKind(err))
		v.notifier.Error(msgLoadEventsFailed)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.latest {
		logger.DebugContext(ctx, "discarding superseded load result", "generation", generation)
		return
	}
	v.records = records
	v.loaded = true
}

func (v *EventBookingsView) settle(generation uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if generation == v.latest {
		v.loading = false
	}
}

// UpdateStatus requests a status change for one booking. The requested
// transition is not checked locally.
func (v *EventBookingsView) UpdateStatus(ctx context.Context, id int64, status EventBookingStatus) MutationResult {
	result := MutationResult{Mutation: MutationUpdateStatus, ID: id, Status: status}
	if v == nil || v.gateway == nil {
		return result
	}
	logger := viewLogger(ctx, v.logger, "event_bookings", "update_status", "booking_id", id, "status", status, "policy", v.policy.String())
	if v.life.stale(ctx) {
		result.Discarded = true
		return result
	}

	bound, release := v.life.bind(ctx)
	err := v.gateway.UpdateEventBookingStatus(bound, v.token, id, status)
	release()

	result.Err = err
	result.Succeeded = err == nil
	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding update result for closed view")
		result.Discarded = true
		return result
	}

	proceed := err == nil
	if err != nil {
		logger.WarnContext(ctx, "status update failed", "error", err, "error_kind", ErrorKind(err))
		if v.policy == MutationPolicyLegacy && errors.Is(err, ErrRemoteRejected) {
			proceed = true
		}
	}
	if !proceed {
		v.notify(&result, NoticeError, msgUpdateFailed)
		return result
	}

	v.notify(&result, NoticeSuccess, msgStatusUpdated)
	v.LoadAll(ctx)
	result.Reloaded = true
	return result
}

// DeleteRecord removes one booking after the user confirmed the action.
func (v *EventBookingsView) DeleteRecord(ctx context.Context, id int64) MutationResult {
	result := MutationResult{Mutation: MutationDelete, ID: id}
	if v == nil || v.gateway == nil {
		return result
	}
	logger := viewLogger(ctx, v.logger, "event_bookings", "delete", "booking_id", id, "policy", v.policy.String())
	if v.life.stale(ctx) {
		result.Discarded = true
		return result
	}

	bound, release := v.life.bind(ctx)
	err := v.gateway.DeleteEventBooking(bound, v.token, id)
	release()

	result.Err = err
	result.Succeeded = err == nil
	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding delete result for closed view")
		result.Discarded = true
		return result
	}

	if err != nil {
		switch {
		case v.policy != MutationPolicyLegacy:
			logger.WarnContext(ctx, "delete failed", "error", err, "error_kind", ErrorKind(err))
			v.notify(&result, NoticeError, msgDeleteFailed)
			return result
		case !errors.Is(err, ErrRemoteRejected):
			logger.ErrorContext(ctx, "unhandled delete failure", "error", err, "error_kind", ErrorKind(err))
			return result
		default:
			logger.WarnContext(ctx, "delete rejected by API", "error", err, "error_kind", ErrorKind(err))
		}
	}

	v.notify(&result, NoticeSuccess, msgEventDeleted)
	v.LoadAll(ctx)
	result.Reloaded = true
	return result
}

func (v *EventBookingsView) notify(result *MutationResult, level NoticeLevel, message string) {
	result.Notified = level
	if level == NoticeError {
		v.notifier.Error(message)
		return
	}
	v.notifier.Success(message)
}

// Records returns a copy of the current list.
func (v *EventBookingsView) Records() []EventBooking {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]EventBooking, len(v.records))
	copy(out, v.records)
	return out
}

// Loading reports whether a load is outstanding.
func (v *EventBookingsView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Snapshot returns the rows to render together with the loading flag.
func (v *EventBookingsView) Snapshot() EventBookingsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	rows := make([]EventBookingRow, 0, len(v.records))
	for _, record := range v.records {
		rows = append(rows, EventBookingRow{
			EventBooking: record,
			Color:        StatusColor(record.Status),
			Actions:      AllowedActions(record.Status),
		})
	}
	return EventBookingsSnapshot{Loading: v.loading, Loaded: v.loaded, Rows: rows}
}
