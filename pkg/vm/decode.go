package vm

import "github.com/bassosimone/rv32sim/pkg/isa"

// The following functions extract the fixed-position fields of an
// instruction word. This mirrors the teacher VM's free-function decode
// style (DecodeOpcode/DecodeRA/DecodeRB/DecodeRC in pkg/vm/vm.go),
// generalized from RiSC-16's three formats to RV32I's six.

// DecodeOpcode decodes the opcode field, bits [6:0].
func DecodeOpcode(word uint32) uint32 {
	return word & 0x7F
}

// DecodeRd decodes the destination register field, bits [11:7].
func DecodeRd(word uint32) uint32 {
	return (word >> 7) & 0x1F
}

// DecodeFunct3 decodes the funct3 field, bits [14:12].
func DecodeFunct3(word uint32) uint32 {
	return (word >> 12) & 0x7
}

// DecodeRs1 decodes the first source register field, bits [19:15].
func DecodeRs1(word uint32) uint32 {
	return (word >> 15) & 0x1F
}

// DecodeRs2 decodes the second source register field, bits [24:20].
func DecodeRs2(word uint32) uint32 {
	return (word >> 20) & 0x1F
}

// DecodeFunct7 decodes the funct7 field, bits [31:25].
func DecodeFunct7(word uint32) uint32 {
	return (word >> 25) & 0x7F
}

// DecodeShamt decodes the 5-bit shift amount carried in an I-type
// shift instruction's rs2-position bits [24:20].
func DecodeShamt(word uint32) uint32 {
	return (word >> 20) & 0x1F
}

// DecodeImmI decodes and sign-extends the I-type 12-bit immediate,
// bits [31:20].
func DecodeImmI(word uint32) uint32 {
	return isa.SignExtend(word>>20, 12)
}

// DecodeImmS decodes and sign-extends the S-type 12-bit immediate:
// imm[11:5] from bits [31:25], imm[4:0] from bits [11:7].
func DecodeImmS(word uint32) uint32 {
	imm := ((word>>25)&0x7F)<<5 | ((word >> 7) & 0x1F)
	return isa.SignExtend(imm, 12)
}

// DecodeImmB decodes and sign-extends the B-type 13-bit signed byte
// offset from its scrambled layout: imm[12]<-31, imm[10:5]<-30:25,
// imm[4:1]<-11:8, imm[11]<-7, imm[0] implicitly 0.
func DecodeImmB(word uint32) uint32 {
	imm := ((word>>31)&0x1)<<12 |
		((word>>7)&0x1)<<11 |
		((word>>25)&0x3F)<<5 |
		((word>>8)&0xF)<<1
	return isa.SignExtend(imm, 13)
}

// DecodeImmU decodes the U-type immediate: bits [31:12] verbatim, with
// the low 12 bits zero.
func DecodeImmU(word uint32) uint32 {
	return word & 0xFFFFF000
}

// DecodeImmJ decodes and sign-extends the J-type 21-bit signed byte
// offset from its scrambled layout: imm[20]<-31, imm[10:1]<-30:21,
// imm[11]<-20, imm[19:12]<-19:12, imm[0] implicitly 0.
func DecodeImmJ(word uint32) uint32 {
	imm := ((word>>31)&0x1)<<20 |
		((word>>12)&0xFF)<<12 |
		((word>>20)&0x1)<<11 |
		((word>>21)&0x3FF)<<1
	return isa.SignExtend(imm, 21)
}
