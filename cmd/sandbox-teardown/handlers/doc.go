// Package handlers implements the business logic behind the CLI commands.
//
// Handlers build their collaborators through package-level factory
// variables so that tests can replace them.
package handlers
