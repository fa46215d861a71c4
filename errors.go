// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package unmhtml

import "errors"

// InputError is returned when the input is empty or contains no usable HTML
// document (either a malformed archive passed through unchanged, or a valid
// MIME structure with no text/html part).
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "Failed to convert MHTML: " + e.Reason
}

// FileError is returned by ConvertFile when the archive cannot be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "Failed to read MHTML file: " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ConversionError wraps any unexpected failure in the rewrite pipeline.
// Decoding itself never fails (malformed input degrades to passthrough),
// so this surfaces only when a downstream pass panics.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return "Failed to convert MHTML: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether the error is an InputError.
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsFileError reports whether the error is a FileError.
func IsFileError(err error) bool {
	var target *FileError
	return errors.As(err, &target)
}

// IsConversionError reports whether the error is a ConversionError.
func IsConversionError(err error) bool {
	var target *ConversionError
	return errors.As(err, &target)
}
