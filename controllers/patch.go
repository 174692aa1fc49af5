package controllers

// setString overwrites dst when v was supplied.
func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setNullable overwrites dst when v was supplied; an empty value clears it.
func setNullable(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}

func setUint(dst *uint, v *uint) {
	if v != nil {
		*dst = *v
	}
}

// nullable is v for a natural key probe; absent or empty matches NULL.
func nullable(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func ptrOrNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}
