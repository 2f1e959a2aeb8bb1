// Package errors provides a structured error handling solution for the
// rpg-core runtime.
//
// This package provides:
//   - Structured errors with codes, messages, and metadata
//   - Domain-error checking the game systems can branch on
//   - Error context preservation through wrapping
//   - Validation error helpers
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("quest not found")
//	err := errors.InvalidArgumentf("invalid spell level: %d", level)
//
// Adding metadata:
//
//	err := errors.NotFound("quest not found").
//	    WithMeta("quest_id", questID)
//
// Wrapping errors:
//
//	if err := store.AddItem(item); err != nil {
//	    return errors.Wrap(err, "failed to load items file")
//	}
//
// Changing error semantics:
//
//	if err := loader.Read(path); err != nil {
//	    if os.IsNotExist(err) {
//	        return errors.WrapWithCode(err, errors.CodeNotFound, "data file missing")
//	    }
//	    return errors.Wrap(err, "read failed")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsResourceExhausted(err) {
//	    // party / inventory / roster is full
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("level", input.Level, 1, 200, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, AlreadyExists)
//   - Include relevant IDs in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check game preconditions and return FailedPrecondition errors
//   - Wrap repository errors with domain context
//
// # Error Codes
//
// The following error codes are available:
//   - NotFound: content or runtime record not found
//   - InvalidArgument: invalid input provided
//   - AlreadyExists: duplicate content ID or duplicate recruitment
//   - ResourceExhausted: party, roster, or inventory capacity reached
//   - FailedPrecondition: operation requirements not met (e.g. cast checks)
//   - OutOfRange: index or value out of valid range
//   - Unimplemented: reserved hook point
//   - Internal: unexpected internal failure
//   - DataLoss: unrecoverable save failure
package errors
