// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

func hash160(b []byte) []byte {
	return chainhash.Hash160(b)
}

func sha256Sum(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func hash256(b []byte) []byte {
	return chainhash.HashB(b)
}

// Standard script verification errors.
var (
	ErrScriptUnderflow  = errors.New("txscript: stack underflow")
	ErrEqualVerifyFail  = errors.New("txscript: OP_EQUALVERIFY failed")
	ErrVerifyFail       = errors.New("txscript: OP_VERIFY failed")
	ErrCheckSigFail     = errors.New("txscript: signature verification failed")
	ErrDiscouragedOp    = errors.New("txscript: opcode not supported by this engine")
	ErrCleanStack       = errors.New("txscript: script did not leave exactly one true value on the stack")
	ErrP2SHNonPushOnly  = errors.New("txscript: signature script for a p2sh output is not push-only")
)

// stack is a minimal LIFO byte-slice stack, the data structure the script
// interpreter operates on.
type stack [][]byte

func (s *stack) push(v []byte) { *s = append(*s, v) }

func (s *stack) pop() ([]byte, error) {
	n := len(*s)
	if n == 0 {
		return nil, ErrScriptUnderflow
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, nil
}

func (s *stack) top() ([]byte, error) {
	n := len(*s)
	if n == 0 {
		return nil, ErrScriptUnderflow
	}
	return (*s)[n-1], nil
}

func asBool(v []byte) bool {
	for i, b := range v {
		if b != 0 {
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

func fromBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return nil
}

// Engine executes the push-only opcode subset used by the standard
// templates (§5 "Scripts"): data pushes, OP_DUP/OP_HASH160/OP_HASH256/
// OP_SHA256, OP_EQUAL(VERIFY), OP_VERIFY, OP_CHECKSIG(VERIFY), and
// OP_CHECKMULTISIG(VERIFY). It is not a general-purpose Script VM; opcodes
// outside this set cause execution to fail rather than being silently
// skipped, since every standard output template in use stays within it.
type Engine struct {
	sigScript []byte
	pkScript  []byte
	tx        *wire.MsgTx
	txIdx     int
	sigCache  *SigCache
}

// NewEngine validates the basic shape of the scripts and returns an Engine
// ready to execute them against input txIdx of tx.
func NewEngine(sigScript, pkScript []byte, tx *wire.MsgTx, txIdx int, sigCache *SigCache) (*Engine, error) {
	if txIdx < 0 || txIdx >= len(tx.TxIn) {
		return nil, ErrInvalidIndex
	}
	return &Engine{
		sigScript: sigScript,
		pkScript:  pkScript,
		tx:        tx,
		txIdx:     txIdx,
		sigCache:  sigCache,
	}, nil
}

// Execute runs the signature script, then the public key script (and, for
// pay-to-script-hash outputs, the embedded redeem script), returning an
// error if the combination does not validate.
func (e *Engine) Execute() error {
	if scriptHash, ok := ExtractScriptHash(e.pkScript); ok {
		return e.executeP2SH(scriptHash)
	}

	st := make(stack, 0, 4)
	if err := e.run(e.sigScript, &st); err != nil {
		return err
	}
	if err := e.run(e.pkScript, &st); err != nil {
		return err
	}
	return finalStackCheck(st)
}

func (e *Engine) executeP2SH(scriptHash []byte) error {
	if !isPushOnly(e.sigScript) {
		return ErrP2SHNonPushOnly
	}

	st := make(stack, 0, 4)
	if err := e.run(e.sigScript, &st); err != nil {
		return err
	}
	if len(st) == 0 {
		return ErrScriptUnderflow
	}
	redeemScript := st[len(st)-1]

	hashScript := PayToScriptHashScript(scriptHash)
	if err := e.run(hashScript, &st); err != nil {
		return err
	}
	top, err := st.top()
	if err != nil {
		return err
	}
	if !asBool(top) {
		return ErrEqualVerifyFail
	}
	st = st[:len(st)-1]

	if err := e.run(redeemScript, &st); err != nil {
		return err
	}
	return finalStackCheck(st)
}

func finalStackCheck(st stack) error {
	if len(st) != 1 {
		return ErrCleanStack
	}
	if !asBool(st[0]) {
		return ErrCleanStack
	}
	return nil
}

func isPushOnly(script []byte) bool {
	tokenizer := MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		if tokenizer.Opcode() > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// run interprets script, mutating st in place.
func (e *Engine) run(script []byte, st *stack) error {
	tokenizer := MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		data := tokenizer.Data()

		switch {
		case data != nil || (op >= OP_DATA_1 && op <= OP_DATA_75):
			st.push(data)
		case op == OP_0:
			st.push(nil)
		case IsSmallInt(op):
			st.push(ScriptNum(AsSmallInt(op)).Bytes())
		case op == OP_1NEGATE:
			st.push(ScriptNum(-1).Bytes())
		case op == OP_DUP:
			v, err := st.top()
			if err != nil {
				return err
			}
			st.push(v)
		case op == OP_HASH160:
			v, err := st.pop()
			if err != nil {
				return err
			}
			st.push(hash160(v))
		case op == OP_SHA256:
			v, err := st.pop()
			if err != nil {
				return err
			}
			st.push(sha256Sum(v))
		case op == OP_HASH256:
			v, err := st.pop()
			if err != nil {
				return err
			}
			st.push(hash256(v))
		case op == OP_EQUAL || op == OP_EQUALVERIFY:
			b, err := st.pop()
			if err != nil {
				return err
			}
			a, err := st.pop()
			if err != nil {
				return err
			}
			equal := bytesEqual(a, b)
			if op == OP_EQUALVERIFY {
				if !equal {
					return ErrEqualVerifyFail
				}
				continue
			}
			st.push(fromBool(equal))
		case op == OP_VERIFY:
			v, err := st.pop()
			if err != nil {
				return err
			}
			if !asBool(v) {
				return ErrVerifyFail
			}
		case op == OP_RETURN:
			return ErrDiscouragedOp
		case op == OP_CHECKSIG || op == OP_CHECKSIGVERIFY:
			if err := e.checkSig(st); err != nil {
				return err
			}
			if op == OP_CHECKSIGVERIFY {
				v, err := st.pop()
				if err != nil {
					return err
				}
				if !asBool(v) {
					return ErrVerifyFail
				}
			}
		case op == OP_CHECKMULTISIG || op == OP_CHECKMULTISIGVERIFY:
			if err := e.checkMultiSig(st); err != nil {
				return err
			}
			if op == OP_CHECKMULTISIGVERIFY {
				v, err := st.pop()
				if err != nil {
					return err
				}
				if !asBool(v) {
					return ErrVerifyFail
				}
			}
		default:
			return fmt.Errorf("%w: opcode %#x", ErrDiscouragedOp, op)
		}
	}
	return tokenizer.Err()
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkSig pops a pubkey and signature off the stack, verifies the
// signature over the current transaction's signature hash for this input
// and pushes the boolean result.
func (e *Engine) checkSig(st *stack) error {
	pubKeyBytes, err := st.pop()
	if err != nil {
		return err
	}
	sigBytes, err := st.pop()
	if err != nil {
		return err
	}
	if len(sigBytes) == 0 {
		st.push(nil)
		return nil
	}

	hashType := sigBytes[len(sigBytes)-1]
	rawSig := sigBytes[:len(sigBytes)-1]

	sigHash, err := CalcSignatureHash(e.pkScript, hashType, e.tx, e.txIdx)
	if err != nil {
		return err
	}

	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		st.push(nil)
		return nil
	}
	sig, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		st.push(nil)
		return nil
	}

	if e.sigCache != nil && e.sigCache.Exists(sigHash, sig, pubKey) {
		st.push(fromBool(true))
		return nil
	}

	valid := sig.Verify(sigHash[:], pubKey)
	if valid && e.sigCache != nil {
		e.sigCache.Add(sigHash, sig, pubKey, e.tx)
	}
	st.push(fromBool(valid))
	return nil
}

// checkMultiSig implements the classic m-of-n bare/P2SH multisig
// verification: signatures and public keys must appear in the same
// relative order, but need not be a contiguous subset.
func (e *Engine) checkMultiSig(st *stack) error {
	nBytes, err := st.pop()
	if err != nil {
		return err
	}
	n, err := MakeScriptNum(nBytes, 4)
	if err != nil {
		return err
	}
	pubKeys := make([][]byte, n)
	for i := int(n) - 1; i >= 0; i-- {
		pk, err := st.pop()
		if err != nil {
			return err
		}
		pubKeys[i] = pk
	}

	mBytes, err := st.pop()
	if err != nil {
		return err
	}
	m, err := MakeScriptNum(mBytes, 4)
	if err != nil {
		return err
	}
	sigs := make([][]byte, m)
	for i := int(m) - 1; i >= 0; i-- {
		sig, err := st.pop()
		if err != nil {
			return err
		}
		sigs[i] = sig
	}

	// The original CHECKMULTISIG has a well-known off-by-one bug that pops
	// one extra (unused) stack element; replicate it for wire compatibility
	// with scripts built against that behavior.
	if _, err := st.pop(); err != nil {
		return err
	}

	pkIdx := 0
	matched := 0
	for _, sig := range sigs {
		if len(sig) == 0 {
			continue
		}
		hashType := sig[len(sig)-1]
		rawSig := sig[:len(sig)-1]
		parsedSig, err := ecdsa.ParseDERSignature(rawSig)
		if err != nil {
			continue
		}
		sigHash, err := CalcSignatureHash(e.pkScript, hashType, e.tx, e.txIdx)
		if err != nil {
			return err
		}
		for pkIdx < len(pubKeys) {
			pubKey, err := secp256k1.ParsePubKey(pubKeys[pkIdx])
			pkIdx++
			if err != nil {
				continue
			}
			if parsedSig.Verify(sigHash[:], pubKey) {
				matched++
				break
			}
		}
	}

	st.push(fromBool(matched == int(m)))
	return nil
}
