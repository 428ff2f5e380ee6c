package errors

import (
	"strings"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"valid small", 3, 2, false},
		{"valid single cell", 1, 1, false},
		{"valid max", maxExtent, maxExtent, false},

		{"zero rows", 0, 2, true},
		{"negative cols", 3, -1, true},
		{"too many rows", maxExtent + 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateDimensions error code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateCellSize(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
		wantErr       bool
	}{
		{"terminal cell", 1, 16, false},
		{"square", 96, 96, false},
		{"zero height", 0, 16, true},
		{"negative width", 1, -4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCellSize(tt.height, tt.width)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCellSize(%d, %d) error = %v, wantErr %v", tt.height, tt.width, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePadding(t *testing.T) {
	tests := []struct {
		name             string
		size, start, end int
		wantErr          bool
	}{
		{"no padding", 24, 0, 0, false},
		{"status line", 24, 0, 1, false},
		{"whole viewport", 4, 2, 2, false},
		{"negative", 24, -1, 0, true},
		{"exceeds", 4, 3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePadding(tt.size, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePadding(%d, %d, %d) error = %v, wantErr %v", tt.size, tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"table", "json", "dot", "svg"}

	if err := ValidateFormat("json", supported); err != nil {
		t.Errorf("ValidateFormat(json) = %v, want nil", err)
	}

	err := ValidateFormat("pdf", supported)
	if err == nil {
		t.Fatal("ValidateFormat(pdf) = nil, want error")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "table, json, dot, svg") {
		t.Errorf("error should list supported formats: %v", err)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tablegrid:cells", false},
		{"empty", "", true},
		{"space", "table grid", true},
		{"newline", "cells\n", true},
		{"too long", strings.Repeat("k", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
