package schema

// Validate checks raw options against the schema of the actor at path.
// It returns the normalized values together with every failure found:
// missing required options, type mismatches and undeclared names.
// Optional options that are absent receive their default.
func Validate(path string, options Options, raw map[string]any) (Values, []error) {
	values := make(Values, len(options))
	var errs []error

	for _, name := range sortedKeys(options) {
		opt := options[name]
		value, exists := raw[name]
		if !exists {
			if opt.Required {
				errs = append(errs, &MissingRequiredOptionError{Path: path, Option: name})
			} else if def, err := opt.NormalizedDefault(); err == nil && def != nil {
				values[name] = def
			}
			continue
		}

		normalized, err := opt.Type.Validate(value)
		if err != nil {
			errs = append(errs, &InvalidOptionTypeError{
				Path:     path,
				Option:   name,
				Expected: opt.Type.Name(),
				Actual:   TypeOf(value),
				Reason:   err.Error(),
			})
			continue
		}
		values[name] = normalized
	}

	// Undeclared options are errors so typos never pass silently.
	for _, name := range sortedKeys(raw) {
		if _, declared := options[name]; !declared {
			errs = append(errs, &UnknownOptionError{Path: path, Option: name})
		}
	}

	return values, errs
}

// Check validates raw options and folds failures into an *AggregateError.
func Check(path string, options Options, raw map[string]any) (Values, error) {
	values, errs := Validate(path, options, raw)
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return values, nil
}
