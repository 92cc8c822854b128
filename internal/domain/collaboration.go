package domain

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/yigit/atcampus/internal/pkg/apperrors"
)

// RequestStatus is the lifecycle state of a collaboration request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusDeclined RequestStatus = "DECLINED"
)

// Decision is the owner's answer to a pending request
type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionDecline Decision = "DECLINE"
)

// Gate errors. Each wraps an application sentinel so the HTTP layer can map it.
var (
	ErrUnauthorized        = fmt.Errorf("%w: only the research owner can manage collaboration requests", apperrors.ErrPermissionDenied)
	ErrNotFound            = fmt.Errorf("%w: collaboration request not found", apperrors.ErrResourceNotFound)
	ErrResearchNotFound    = apperrors.ErrResearchNotFound
	ErrInvalidState        = fmt.Errorf("%w: this request was already handled", apperrors.ErrConflict)
	ErrInvalidDecision     = fmt.Errorf("%w: decision must be ACCEPT or DECLINE", apperrors.ErrBadRequest)
	ErrSelfRequest         = fmt.Errorf("%w: you cannot request to join your own research", apperrors.ErrBadRequest)
	ErrAlreadyCollaborator = fmt.Errorf("%w: you are already a collaborator on this research", apperrors.ErrConflict)
	ErrDuplicateRequest    = fmt.Errorf("%w: you already have a pending request for this research", apperrors.ErrConflict)
)

// CollaborationRequest is a user's ask to join someone else's research
type CollaborationRequest struct {
	ID         string        `json:"id"`
	ResearchID string        `json:"researchId"`
	Requester  User          `json:"requester"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	ResolvedAt *time.Time    `json:"resolvedAt,omitempty"`
}

// Resolution is the outcome of a successful accept or decline.
// Collaborators is only set for ACCEPT.
type Resolution struct {
	Request       CollaborationRequest
	Collaborators []User
}

// ParseDecision reads a decision case-insensitively
func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalidDecision
	}
	return d, nil
}

// Valid reports whether d is a known decision
func (d Decision) Valid() bool {
	switch d {
	case DecisionAccept, DecisionDecline:
		return true
	}
	return false
}

// Valid reports whether s is a known status
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusDeclined
}

// Apply returns the status reached by applying d to s.
//
//	PENDING --ACCEPT--> ACCEPTED
//	PENDING --DECLINE--> DECLINED
//
// ACCEPTED and DECLINED are terminal.
func (s RequestStatus) Apply(d Decision) (RequestStatus, error) {
	if !d.Valid() {
		return s, ErrInvalidDecision
	}

	switch {
	case s == RequestStatusPending:
		if d == DecisionAccept {
			return RequestStatusAccepted, nil
		}
		return RequestStatusDeclined, nil
	case s.IsTerminal():
		return s, ErrInvalidState
	default:
		return s, fmt.Errorf("%w (unknown status %q)", ErrInvalidState, s)
	}
}

// CanViewRequests reports whether viewerID may see the research's requests
func CanViewRequests(r *Research, viewerID string) bool {
	return r != nil && viewerID != "" && r.OwnerID() == viewerID
}

// PendingRequests yields the PENDING requests of r in their original order.
// The sequence reads r lazily and can be ranged over any number of times.
func PendingRequests(r *Research) iter.Seq[*CollaborationRequest] {
	return func(yield func(*CollaborationRequest) bool) {
		if r == nil {
			return
		}
		for _, req := range r.CollaborationRequests {
			if req.Status != RequestStatusPending {
				continue
			}
			if !yield(req) {
				return
			}
		}
	}
}

// ResolveRequest applies the owner's decision to one request of r.
// Checks run in order: owner, request existence, request state. Nothing is
// mutated unless all of them pass.
func ResolveRequest(r *Research, viewerID, requestID string, d Decision) (*Resolution, error) {
	if !d.Valid() {
		return nil, ErrInvalidDecision
	}
	if r == nil {
		return nil, ErrResearchNotFound
	}
	if !CanViewRequests(r, viewerID) {
		return nil, ErrUnauthorized
	}

	req := r.findRequest(requestID)
	if req == nil {
		return nil, ErrNotFound
	}

	next, err := req.Status.Apply(d)
	if err != nil {
		return nil, err
	}

	resolvedAt := time.Now().UTC()
	req.Status = next
	req.ResolvedAt = &resolvedAt

	res := &Resolution{Request: *req}
	if next == RequestStatusAccepted {
		r.addCollaborator(req.Requester)
		res.Collaborators = slices.Clone(r.Collaborators)
	}
	return res, nil
}

// ValidateNewRequest checks whether requesterID may open a request on r
func ValidateNewRequest(r *Research, requesterID string) error {
	if r == nil {
		return ErrResearchNotFound
	}
	if r.OwnerID() == requesterID {
		return ErrSelfRequest
	}
	if r.HasCollaborator(requesterID) {
		return ErrAlreadyCollaborator
	}
	for req := range PendingRequests(r) {
		if req.Requester.ID == requesterID {
			return ErrDuplicateRequest
		}
	}
	return nil
}
