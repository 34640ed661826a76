// Package serializer writes run results to a file or stdout in JSON, YAML,
// or table format.
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, state); err != nil {
//		return err
//	}
//
// The table format flattens nested values into dotted keys and renders them
// with aligned columns for terminal viewing.
package serializer
