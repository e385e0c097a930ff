// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Document is one submitted document as plain text
type Document struct {
	Name     string `json:"name"`
	TypeHint string `json:"type_hint,omitempty"`
	Text     string `json:"text"`
}

// Batch is a set of documents submitted together for one vendor
type Batch struct {
	Documents []Document `json:"documents"`
}

//go:embed batch.schema.json
var batchSchemaJSON []byte

var (
	batchSchemaOnce sync.Once
	batchSchema     *jsonschema.Schema
	batchSchemaErr  error
)

func compiledBatchSchema() (*jsonschema.Schema, error) {
	batchSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("batch.schema.json", bytes.NewReader(batchSchemaJSON)); err != nil {
			batchSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		batchSchema, batchSchemaErr = compiler.Compile("batch.schema.json")
	})
	return batchSchema, batchSchemaErr
}

// DecodeBatch reads a JSON batch and validates it against the batch schema
// before decoding.
func DecodeBatch(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("read batch: %w", err)
	}

	schema, err := compiledBatchSchema()
	if err != nil {
		return Batch{}, fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Batch{}, fmt.Errorf("unmarshal batch: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return Batch{}, fmt.Errorf("batch does not match schema: %w", err)
	}

	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return Batch{}, fmt.Errorf("decode batch: %w", err)
	}
	for i := range batch.Documents {
		if batch.Documents[i].Name == "" {
			batch.Documents[i].Name = fmt.Sprintf("document-%d", i+1)
		}
	}
	return batch, nil
}
