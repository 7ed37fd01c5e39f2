// Package group provides composite actors that orchestrate nested actors.
package group

import "github.com/aretw0/troupe/pkg/schema"

const (
	// SyncKind runs children one after another and stops at the first failure.
	SyncKind = "group.Sync"
	// AsyncKind runs children concurrently.
	AsyncKind = "group.Async"
)

func actsOption() schema.Option {
	return schema.Required(schema.Actors(), "Ordered list of actor definitions to run")
}
