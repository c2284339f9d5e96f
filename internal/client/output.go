package client

import (
	"encoding/json"
	"fmt"
)

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) printText(s string) error {
	_, err := fmt.Fprintln(a.out, s)
	return err
}
