// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the semfilter CLI command set. It wires flags,
// validators and actions for the check, convert, eval, diff and rules
// subcommands. Row-producing commands share one action pattern: rows are
// encoded as a {"data": [...]} document and rendered by the output package.
package command
