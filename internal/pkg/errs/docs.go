// Package errs provides the error taxonomy shared by the printdesk domain,
// application and adapter layers.
//
// Every error type wraps one sentinel so callers classify failures with
// errors.Is and extract details with errors.As:
//   - ObjectNotFoundError        -> ErrObjectNotFound
//   - ValueIsInvalidError        -> ErrValueIsInvalid
//   - ValueIsRequiredError       -> ErrValueIsRequired
//   - InvalidMembersError        -> ErrValueIsInvalid (lists unknown staff ids)
//   - ClaimConflictError         -> ErrConflict (names the current claimant)
//   - NotClaimantError           -> ErrForbidden (names the current claimant)
//   - InvalidStateError          -> ErrInvalidState
//
// Constructors come in pairs with and without a cause where a cause makes sense.
// Error text is kept on one line so it is safe to log and to return to clients.
package errs
