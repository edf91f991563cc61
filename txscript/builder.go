// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// MaxScriptSize is the maximum allowed length of a raw script.
const MaxScriptSize = 16384

// ScriptBuilder provides a facility for building custom scripts. It allows
// the easy addition of data and opcodes into a script buffer.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{script: make([]byte, 0, 512)}
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddData pushes the passed data to the end of the script, using the
// canonical minimal-length encoding appropriate for its size.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataLen := len(data)
	switch {
	case dataLen == 0:
		b.script = append(b.script, OP_0)
	case dataLen <= 75:
		b.script = append(b.script, byte(OP_DATA_1-1+dataLen))
		b.script = append(b.script, data...)
	case dataLen <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(dataLen))
		b.script = append(b.script, data...)
	case dataLen <= 0xffff:
		b.script = append(b.script, OP_PUSHDATA2, byte(dataLen), byte(dataLen>>8))
		b.script = append(b.script, data...)
	default:
		b.script = append(b.script, OP_PUSHDATA4,
			byte(dataLen), byte(dataLen>>8), byte(dataLen>>16), byte(dataLen>>24))
		b.script = append(b.script, data...)
	}

	if len(b.script) > MaxScriptSize {
		b.err = fmt.Errorf("adding %d bytes would exceed the max allowed "+
			"canonical script length of %d", dataLen, MaxScriptSize)
	}
	return b
}

// AddInt64 pushes the passed integer using the smallest canonical
// representation available.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if val == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if val == -1 || (val >= 1 && val <= 16) {
		b.script = append(b.script, byte((OP_1-1)+val))
		return b
	}

	return b.AddData(ScriptNum(val).Bytes())
}

// Script returns the currently built script. Any errors encountered during
// the building process are returned, and once an error occurs the builder
// refuses further additions.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}
