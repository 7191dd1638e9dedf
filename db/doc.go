// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
DatabaseType "postgres" targets PostgreSQL; "sqlite" targets sqlite (used for
local development and tests) and enables foreign key enforcement via PRAGMA.

# Tables

  - users: Accounts with voter/admin role
  - elections: Time-bounded contests; status column is a cache of the derived
    lifecycle phase, total_votes an advisory counter
  - candidates: Options per election
  - votes: One vote per voter per election

# Relationships

	election 1──* candidate
	election 1──* vote
	candidate 1──* vote
	user 1──* vote

All foreign keys use ON DELETE CASCADE, so deleting an election removes its
candidates and votes.

# The single-vote constraint

	UNIQUE (election_id, voter_id)

This constraint is the authoritative duplicate-vote guard. Application-level
pre-checks are an optimization; a violation on insert is the real rejection.
*/
package db
