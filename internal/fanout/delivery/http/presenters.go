package http

import (
	"encoding/json"
	"fmt"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/model"
)

// internalKeyHeader guards the producer endpoint.
const internalKeyHeader = "X-Internal-Key"

// publishReq is the producer API request body. An empty user_id targets the
// tenant's general announcement channel.
type publishReq struct {
	TenantID string          `json:"tenant_id" binding:"required"`
	UserID   string          `json:"user_id"`
	Event    string          `json:"event" binding:"required"`
	Data     json.RawMessage `json:"data"`
}

func (r publishReq) toInput() (fanout.PublishInput, error) {
	if r.TenantID == fanout.SystemTenantID {
		return fanout.PublishInput{}, fmt.Errorf("tenant id %q is reserved", r.TenantID)
	}

	msg, err := fanout.NewMessage(r.Event, r.Data)
	if err != nil {
		return fanout.PublishInput{}, err
	}
	return fanout.PublishInput{
		TenantID: r.TenantID,
		UserID:   r.UserID,
		Message:  msg,
	}, nil
}

type publishResp struct {
	Delivered bool `json:"delivered"`
}

// fanoutScope rebuilds the scope carried by a session descriptor, for the
// snapshot read.
func fanoutScope(desc fanout.SessionDescriptor) model.Scope {
	return model.Scope{
		UserID:   desc.UserID,
		TenantID: desc.TenantID,
	}
}
