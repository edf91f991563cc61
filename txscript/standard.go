// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptClass identifies the type of a script.
type ScriptClass byte

const (
	NonStandardTy ScriptClass = iota
	PubKeyHashTy
	ScriptHashTy
	PubKeyTy
	MultiSigTy
	NullDataTy
)

// MaxDataCarrierSize is the maximum number of bytes allowed in pushed data
// for a provably pruneable null data script.
const MaxDataCarrierSize = 80

// ExtractPubKeyHash extracts the public key hash from script if it is a
// standard pay-to-pubkey-hash script:
//
//	OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
func ExtractPubKeyHash(script []byte) ([]byte, bool) {
	if len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG {

		return script[3:23], true
	}
	return nil, false
}

// ExtractScriptHash extracts the script hash from script if it is a
// standard pay-to-script-hash script:
//
//	OP_HASH160 <20-byte hash> OP_EQUAL
func ExtractScriptHash(script []byte) ([]byte, bool) {
	if len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL {

		return script[2:22], true
	}
	return nil, false
}

// ExtractCompressedPubKey extracts a compressed public key from script if
// it is a standard pay-to-compressed-pubkey script:
//
//	<0x02 or 0x03><32-byte X coordinate> OP_CHECKSIG
//
// The returned typ is 2 or 3, matching the pubkey's sign byte, which doubles
// as the coin-record compression type byte (§4.2).
func ExtractCompressedPubKey(script []byte) (pubKey []byte, typ byte, ok bool) {
	if len(script) == 35 &&
		script[0] == OP_DATA_33 &&
		script[34] == OP_CHECKSIG &&
		(script[1] == 0x02 || script[1] == 0x03) {

		return script[1:34], script[1], true
	}
	return nil, 0, false
}

// ExtractMultisig extracts the required-signature count and public keys
// from script if it is a standard bare multisig script:
//
//	<m> <pubkey> ... <pubkey> <n> OP_CHECKMULTISIG
func ExtractMultisig(script []byte) (required int, pubKeys [][]byte, ok bool) {
	if len(script) < 3 || script[len(script)-1] != OP_CHECKMULTISIG {
		return 0, nil, false
	}

	tokenizer := MakeScriptTokenizer(0, script)
	if !tokenizer.Next() || !IsSmallInt(tokenizer.Opcode()) {
		return 0, nil, false
	}
	required = AsSmallInt(tokenizer.Opcode())
	if required == 0 {
		return 0, nil, false
	}

	for tokenizer.Next() {
		data := tokenizer.Data()
		if data == nil || (len(data) != 33 && len(data) != 65) {
			break
		}
		pubKeys = append(pubKeys, data)
	}
	if tokenizer.Done() {
		return 0, nil, false
	}

	op := tokenizer.Opcode()
	if !IsSmallInt(op) || AsSmallInt(op) != len(pubKeys) {
		return 0, nil, false
	}
	if len(pubKeys) < required {
		return 0, nil, false
	}
	if int(tokenizer.ByteIndex()) != len(script)-1 {
		return 0, nil, false
	}

	return required, pubKeys, true
}

// IsNullData returns whether script is a provably pruneable nulldata
// script: a single OP_RETURN, or OP_RETURN followed by a single canonical
// data push up to MaxDataCarrierSize bytes.
func IsNullData(script []byte) bool {
	if len(script) < 1 || script[0] != OP_RETURN {
		return false
	}
	if len(script) == 1 {
		return true
	}

	tokenizer := MakeScriptTokenizer(0, script[1:])
	return tokenizer.Next() && tokenizer.Done() &&
		len(tokenizer.Data()) <= MaxDataCarrierSize
}

// PayToPubKeyHashScript creates a standard pay-to-pubkey-hash script paying
// to the given 20-byte hash.
func PayToPubKeyHashScript(pkHash []byte) []byte {
	script, _ := NewScriptBuilder().
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(pkHash).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).
		Script()
	return script
}

// PayToScriptHashScript creates a standard pay-to-script-hash script paying
// to the given 20-byte hash.
func PayToScriptHashScript(scriptHash []byte) []byte {
	script, _ := NewScriptBuilder().
		AddOp(OP_HASH160).
		AddData(scriptHash).
		AddOp(OP_EQUAL).
		Script()
	return script
}

// PayToCompressedPubKeyScript creates a pay-to-compressed-pubkey script
// from a 33-byte compressed public key (leading 0x02/0x03 sign byte plus
// the 32-byte X coordinate).
func PayToCompressedPubKeyScript(pubKey []byte) []byte {
	script, _ := NewScriptBuilder().
		AddData(pubKey).
		AddOp(OP_CHECKSIG).
		Script()
	return script
}

// GetScriptClass returns the class of the script passed, classifying it
// against the standard templates recognized by the network.
func GetScriptClass(script []byte) ScriptClass {
	if _, ok := ExtractPubKeyHash(script); ok {
		return PubKeyHashTy
	}
	if _, ok := ExtractScriptHash(script); ok {
		return ScriptHashTy
	}
	if _, _, ok := ExtractCompressedPubKey(script); ok {
		return PubKeyTy
	}
	if _, _, ok := ExtractMultisig(script); ok {
		return MultiSigTy
	}
	if IsNullData(script) {
		return NullDataTy
	}
	return NonStandardTy
}

// GetSigOpCount returns the number of signature operations in script,
// counting OP_CHECKSIG/OP_CHECKSIGVERIFY as one each and weighting
// OP_CHECKMULTISIG/OP_CHECKMULTISIGVERIFY by the small-int pubkey count
// pushed by the opcode just before it, or the conservative maximum when
// that opcode is not a small int.
func GetSigOpCount(script []byte) int {
	tokenizer := MakeScriptTokenizer(0, script)
	var numSigOps int
	var lastOp byte
	haveLastOp := false
	for tokenizer.Next() {
		switch tokenizer.Opcode() {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			numSigOps++
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if haveLastOp && IsSmallInt(lastOp) {
				numSigOps += AsSmallInt(lastOp)
			} else {
				numSigOps += MaxPubKeysPerMultiSig
			}
		}
		lastOp = tokenizer.Opcode()
		haveLastOp = true
	}
	return numSigOps
}

// CalcSigOpCount returns the number of signature operations contributed by
// spending pkScript with sigScript, including a walk into the redeem
// script when pkScript is pay-to-script-hash.
func CalcSigOpCount(pkScript, sigScript []byte) int {
	count := GetSigOpCount(pkScript)
	if _, ok := ExtractScriptHash(pkScript); !ok {
		return count
	}

	// Pull the redeem script, which is always the final data push in a
	// standard P2SH signature script, and count its signature operations
	// without the additional P2SH recursion the original script would get.
	tokenizer := MakeScriptTokenizer(0, sigScript)
	var redeemScript []byte
	for tokenizer.Next() {
		redeemScript = tokenizer.Data()
	}
	if tokenizer.Err() != nil || redeemScript == nil {
		return count
	}
	return GetSigOpCount(redeemScript)
}
