// api/pdp/model/request.go
package model

import "time"

// AccessRequest asks whether Identity may use a resource guarded by
// RequiredType. An empty Identity is the "no identity" sentinel.
type AccessRequest struct {
	Identity     string    `json:"identity"`
	RequiredType string    `json:"required_type"`
	Resource     string    `json:"resource"`
	Timestamp    time.Time `json:"timestamp"`
}
