// Copyright (c) 2019-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ScriptTokenizer provides a facility for easily and efficiently tokenizing
// transaction scripts without creating allocations for data that is
// already in the script. Each successive opcode is parsed with Next.
type ScriptTokenizer struct {
	script   []byte
	offset   int32
	op       byte
	data     []byte
	err      error
}

// MakeScriptTokenizer returns a new instance of a script tokenizer for the
// given script.
func MakeScriptTokenizer(scriptVersion uint16, script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || int(t.offset) >= len(t.script)
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful. It will not be successful if invoked when already at the end
// of the script, a parse failure is encountered, or an associated error
// already exists due to a previous parse failure.
func (t *ScriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	op := t.script[t.offset]
	dataLen, opLen, ok := pushedDataLen(t.script, int(t.offset))
	if !ok {
		if op > OP_PUSHDATA4 {
			t.op = op
			t.data = nil
			t.offset++
			return true
		}
		t.err = fmt.Errorf("opcode %#x at offset %d requires more bytes than "+
			"are available", op, t.offset)
		return false
	}

	start := int(t.offset) + opLen
	if start+dataLen > len(t.script) {
		t.err = fmt.Errorf("opcode %#x at offset %d pushes %d bytes, but "+
			"script only has %d remaining", op, t.offset, dataLen,
			len(t.script)-start)
		return false
	}

	t.op = op
	t.data = t.script[start : start+dataLen]
	t.offset = int32(start + dataLen)
	return true
}

// Script returns the full script associated with the tokenizer.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// ByteIndex returns the current offset into the full script that will be
// parsed next.
func (t *ScriptTokenizer) ByteIndex() int32 {
	return t.offset
}

// Opcode returns the current opcode associated with the tokenizer.
func (t *ScriptTokenizer) Opcode() byte {
	return t.op
}

// Data returns the data associated with the most recently successfully
// parsed opcode.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Err returns any errors currently associated with the tokenizer.
func (t *ScriptTokenizer) Err() error {
	return t.err
}
