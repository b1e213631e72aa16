/*
Copyright © 2025 Virtual Xperience LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/virtualxperience/n8nctl/pkg/n8ncrypto"
)

var (
	// ErrMissingData marks records whose data field is absent or empty.
	ErrMissingData = errors.New("credential has no data field")

	// ErrParse marks records whose blob decrypted but did not yield a
	// JSON object.
	ErrParse = errors.New("decrypted payload is not a JSON object")
)

// Result is the per-record outcome of a batch run: either Data is set or
// Err is. Failures never abort the batch; callers report them by name and
// keep the successes.
type Result struct {
	Record Record
	Data   map[string]any
	Err    error
}

// Ok reports whether the record decrypted and parsed.
func (r Result) Ok() bool { return r.Err == nil }

// Decrypted converts a successful result to its output form.
func (r Result) Decrypted() Decrypted {
	return Decrypted{
		ID:          r.Record.ID,
		Name:        r.Record.Name,
		Type:        r.Record.Type,
		Data:        r.Data,
		NodesAccess: r.Record.NodesAccess,
		IsManaged:   r.Record.IsManaged,
		CreatedAt:   r.Record.CreatedAt,
		UpdatedAt:   r.Record.UpdatedAt,
	}
}

// Decryptor decrypts credential records with a fixed shared secret. The
// secret is injected here once per run rather than read from the
// environment by the crypto layer.
type Decryptor struct {
	password string
	opts     []n8ncrypto.Option
}

// NewDecryptor builds a Decryptor for the given shared secret. Options are
// forwarded to n8ncrypto.Decrypt on every record.
func NewDecryptor(password string, opts ...n8ncrypto.Option) *Decryptor {
	return &Decryptor{password: password, opts: opts}
}

// DecryptOne decrypts a single record's blob and parses the plaintext as a
// JSON object.
func (d *Decryptor) DecryptOne(rec Record) (map[string]any, error) {
	if rec.Data == "" {
		return nil, ErrMissingData
	}

	plaintext, err := n8ncrypto.Decrypt(rec.Data, d.password, d.opts...)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return data, nil
}

// DecryptAll processes every record and returns one Result per input, in
// order. Each record is independent; a failure is recorded and the batch
// continues.
func (d *Decryptor) DecryptAll(records []Record) []Result {
	results := make([]Result, len(records))
	for i, rec := range records {
		data, err := d.DecryptOne(rec)
		results[i] = Result{Record: rec, Data: data, Err: err}
	}
	return results
}

// Split separates a batch into decrypted outputs and failed results.
func Split(results []Result) (decrypted []Decrypted, failed []Result) {
	for _, r := range results {
		if r.Ok() {
			decrypted = append(decrypted, r.Decrypted())
		} else {
			failed = append(failed, r)
		}
	}
	return decrypted, failed
}
