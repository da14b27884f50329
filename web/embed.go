package web

import "embed"

// FS contains all embedded web assets. The dist tree is produced by the
// assets CLI from the sources under src/assets and checked in so the
// server binary is self-contained.
//
//go:embed static/*
var FS embed.FS
