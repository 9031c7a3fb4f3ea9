// Package engine wires the normalizer, the document codec and the reconciler
// into the export and import operations used by the command line.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/normalize"
	"github.com/ivlev/animio/internal/reconcile"
	"github.com/ivlev/animio/internal/source"
)

// ExportAction normalizes a host action and encodes it as a document.
func ExportAction(src source.Action, format document.Format) ([]byte, error) {
	data, _, err := exportAction(src, format)
	return data, err
}

// exportAction also returns the normalized action, for reporting.
func exportAction(src source.Action, format document.Format) ([]byte, *curve.Action, error) {
	action, err := normalize.Action(src)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize action %q: %w", src.Name, err)
	}
	data, err := document.Encode(action, format)
	if err != nil {
		return nil, nil, err
	}
	return data, action, nil
}

// ImportAction decodes a document and reconciles it with the existing action.
// existing may be nil when the target has no animation yet.
func ImportAction(data []byte, format document.Format, existing *curve.Action, policy reconcile.Policy, filter reconcile.KeyframeFilter) (*curve.Action, error) {
	imported, err := document.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return reconcile.Reconcile(imported, existing, policy, filter)
}

// Host is the object receiving an import. CurrentAction returns nil when the
// object has no animation.
type Host interface {
	CurrentAction() (*curve.Action, error)
	WriteAction(action *curve.Action) error
}

type ImportOptions struct {
	Format document.Format
	Policy reconcile.Policy
	Filter reconcile.KeyframeFilter
	// Curves limits the import to these keys. Empty imports every curve.
	Curves []curve.Key
}

// Importer applies one document to a host.
type Importer struct {
	Data    []byte
	Options ImportOptions
	Logger  *zap.SugaredLogger
}

func NewImporter(data []byte, opts ImportOptions, logger *zap.SugaredLogger) *Importer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Importer{Data: data, Options: opts, Logger: logger}
}

// Run decodes the document, reconciles it with the host's action and writes
// the result back once. Nothing is written when an earlier step fails.
func (im *Importer) Run(host Host) (*curve.Action, error) {
	imported, err := document.Decode(im.Data, im.Options.Format)
	if err != nil {
		return nil, err
	}
	imported = restrict(imported, im.Options.Curves)

	existing, err := host.CurrentAction()
	if err != nil {
		return nil, fmt.Errorf("read current action: %w", err)
	}

	result, err := reconcile.Reconcile(imported, existing, im.Options.Policy, im.Options.Filter)
	if err != nil {
		return nil, err
	}
	for _, c := range result.Curves() {
		im.Logger.Debugw("curve resolved", "curve", c.Key().String(), "keyframes", c.Len())
	}

	if err := host.WriteAction(result); err != nil {
		return nil, fmt.Errorf("write action %q: %w", result.Name, err)
	}
	im.Logger.Infow("action imported",
		"action", result.Name,
		"policy", im.Options.Policy.String(),
		"curves", result.Len(),
		"keyframes", result.KeyframeCount(),
	)
	return result, nil
}

// restrict removes, in place, the curves of a whose key is not listed.
func restrict(a *curve.Action, keys []curve.Key) *curve.Action {
	if len(keys) == 0 {
		return a
	}
	allowed := make(map[curve.Key]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	for _, k := range a.Keys() {
		if !allowed[k] {
			a.Remove(k)
		}
	}
	return a
}
