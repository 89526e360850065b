package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/pkg/auth"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}

// hashKey prints the bcrypt hash for API_KEY_HASH. The key is taken from args or the
// first line of in.
func hashKey(out io.Writer, in io.Reader, args []string) error {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read key: %w", err)
		}
		key = line
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty key")
	}

	hash, err := auth.NewBcryptHasher(0).Hash(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
