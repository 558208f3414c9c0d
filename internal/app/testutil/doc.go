// Package testutil provides testify mocks for the pipeline collaborators and the
// HTTP job service, plus small audio and transcript fixtures.
package testutil
