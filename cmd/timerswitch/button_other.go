// cmd/timerswitch/button_other.go

//go:build !unix

package main

import (
	"context"
	"time"

	"github.com/tamzrod/timerswitch/internal/board"
)

func watchButton(ctx context.Context, in *board.Inputs, tick time.Duration) {}
