// Package services contains the core business logic: intent routing, agent
// execution, the ingestion pipeline, hybrid retrieval and client memory.
package services
