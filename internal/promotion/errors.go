package promotion

import "errors"

// ErrArtifactNotFound indicates the selected source tag does not exist in the
// source registry. This is the single recovered-locally case: the run aborts
// cleanly instead of failing.
var ErrArtifactNotFound = errors.New("artifact not found in source registry")

// ErrTaggingFailed indicates a destination tag could not be applied. There is
// no partial-completion tracking; the run must be re-run in full.
var ErrTaggingFailed = errors.New("tagging failed")

// ErrApplyFailed indicates the production topology could not be materialized.
// No automatic rollback is attempted.
var ErrApplyFailed = errors.New("production apply failed")
