package model

// Package model contains domain models/data structures.
// Pure data types shared across layers (HTTP, service, repository);
// no database-specific dependencies and no business logic here.
