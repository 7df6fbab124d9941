package tracker

import "github.com/giftscape-studio/storefront-core/internal/models"

// StepState marks where a fulfillment milestone sits relative to the order's
// current status.
type StepState string

const (
	StepPending   StepState = "pending"
	StepActive    StepState = "active"
	StepCompleted StepState = "completed"
)

// Step is one milestone on the fulfillment timeline. ConnectorDone reports
// whether the segment leading into this step has been traversed.
type Step struct {
	Status        models.OrderStatus `json:"status"`
	State         StepState          `json:"state"`
	ConnectorDone bool               `json:"connector_done"`
}

var timeline = []models.OrderStatus{
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusOutForDelivery,
	models.OrderStatusDelivered,
}

// Steps renders the timeline for an order status. A cancelled order has no
// timeline and yields nil.
func Steps(status models.OrderStatus) []Step {

	if status == models.OrderStatusCancelled {
		return nil
	}

	current := indexOf(status)
	if current < 0 {
		return nil
	}

	steps := make([]Step, len(timeline))

	for i, milestone := range timeline {

		state := StepPending

		switch {
		case i < current:
			state = StepCompleted
		case i == current:
			state = StepActive
		}

		steps[i] = Step{
			Status:        milestone,
			State:         state,
			ConnectorDone: i > 0 && i <= current,
		}
	}

	return steps
}

func indexOf(status models.OrderStatus) int {

	for i, milestone := range timeline {
		if milestone == status {
			return i
		}
	}

	return -1
}
