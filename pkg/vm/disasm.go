package vm

import (
	"fmt"

	"github.com/bassosimone/rv32sim/pkg/isa"
)

// Disassemble renders a single instruction word back into RV32I
// assembly text, for tracing and debugging output. This mirrors the
// teacher VM's Disassemble function (pkg/vm/vm.go in the RiSC-32
// source), generalized to RV32I's mnemonic set.
func Disassemble(word uint32) string {
	opcode := DecodeOpcode(word)
	rd, rs1, rs2 := DecodeRd(word), DecodeRs1(word), DecodeRs2(word)
	f3, f7 := DecodeFunct3(word), DecodeFunct7(word)
	switch opcode {
	case isa.OpcodeOp:
		name, ok := rTypeName(f3, f7)
		if !ok {
			break
		}
		return fmt.Sprintf("%s %s, %s, %s", name, reg(rd), reg(rs1), reg(rs2))
	case isa.OpcodeOpImm:
		if f3 == isa.Funct3SLL || f3 == isa.Funct3SRLSRA {
			name, ok := iShiftName(f3, f7)
			if !ok {
				break
			}
			return fmt.Sprintf("%s %s, %s, %d", name, reg(rd), reg(rs1), DecodeShamt(word))
		}
		name, ok := iArithName(f3)
		if !ok {
			break
		}
		return fmt.Sprintf("%s %s, %s, %d", name, reg(rd), reg(rs1), int32(DecodeImmI(word)))
	case isa.OpcodeLoad:
		name, ok := loadName(f3)
		if !ok {
			break
		}
		return fmt.Sprintf("%s %s, %d(%s)", name, reg(rd), int32(DecodeImmI(word)), reg(rs1))
	case isa.OpcodeStore:
		name, ok := storeName(f3)
		if !ok {
			break
		}
		return fmt.Sprintf("%s %s, %d(%s)", name, reg(rs2), int32(DecodeImmS(word)), reg(rs1))
	case isa.OpcodeBranch:
		name, ok := branchName(f3)
		if !ok {
			break
		}
		return fmt.Sprintf("%s %s, %s, %d", name, reg(rs1), reg(rs2), int32(DecodeImmB(word)))
	case isa.OpcodeJAL:
		return fmt.Sprintf("jal %s, %d", reg(rd), int32(DecodeImmJ(word)))
	case isa.OpcodeJALR:
		return fmt.Sprintf("jalr %s, %s, %d", reg(rd), reg(rs1), int32(DecodeImmI(word)))
	case isa.OpcodeLUI:
		return fmt.Sprintf("lui %s, %#x", reg(rd), DecodeImmU(word))
	case isa.OpcodeAUIPC:
		return fmt.Sprintf("auipc %s, %#x", reg(rd), DecodeImmU(word))
	case isa.OpcodeSystem:
		switch (word >> 20) & 0xFFF {
		case isa.SystemECALL:
			return "ecall"
		case isa.SystemEBREAK:
			return "ebreak"
		}
	}
	return fmt.Sprintf("<unknown instruction: %#08x>", word)
}

func reg(i uint32) string {
	return "x" + fmt.Sprint(i)
}

func rTypeName(f3, f7 uint32) (string, bool) {
	switch {
	case f3 == isa.Funct3ADDSUB && f7 == isa.Funct7Base:
		return "add", true
	case f3 == isa.Funct3ADDSUB && f7 == isa.Funct7Alt:
		return "sub", true
	case f3 == isa.Funct3SLL && f7 == isa.Funct7Base:
		return "sll", true
	case f3 == isa.Funct3SLT && f7 == isa.Funct7Base:
		return "slt", true
	case f3 == isa.Funct3SLTU && f7 == isa.Funct7Base:
		return "sltu", true
	case f3 == isa.Funct3XOR && f7 == isa.Funct7Base:
		return "xor", true
	case f3 == isa.Funct3OR && f7 == isa.Funct7Base:
		return "or", true
	case f3 == isa.Funct3AND && f7 == isa.Funct7Base:
		return "and", true
	case f3 == isa.Funct3SRLSRA && f7 == isa.Funct7Base:
		return "srl", true
	case f3 == isa.Funct3SRLSRA && f7 == isa.Funct7Alt:
		return "sra", true
	default:
		return "", false
	}
}

func iArithName(f3 uint32) (string, bool) {
	switch f3 {
	case isa.Funct3ADDSUB:
		return "addi", true
	case isa.Funct3SLT:
		return "slti", true
	case isa.Funct3SLTU:
		return "sltiu", true
	case isa.Funct3XOR:
		return "xori", true
	case isa.Funct3OR:
		return "ori", true
	case isa.Funct3AND:
		return "andi", true
	default:
		return "", false
	}
}

func iShiftName(f3, f7 uint32) (string, bool) {
	switch {
	case f3 == isa.Funct3SLL:
		return "slli", true
	case f3 == isa.Funct3SRLSRA && f7 == isa.Funct7Alt:
		return "srai", true
	case f3 == isa.Funct3SRLSRA:
		return "srli", true
	default:
		return "", false
	}
}

func loadName(f3 uint32) (string, bool) {
	switch f3 {
	case isa.Funct3LB:
		return "lb", true
	case isa.Funct3LH:
		return "lh", true
	case isa.Funct3LW:
		return "lw", true
	case isa.Funct3LBU:
		return "lbu", true
	case isa.Funct3LHU:
		return "lhu", true
	default:
		return "", false
	}
}

func storeName(f3 uint32) (string, bool) {
	switch f3 {
	case isa.Funct3SB:
		return "sb", true
	case isa.Funct3SH:
		return "sh", true
	case isa.Funct3SW:
		return "sw", true
	default:
		return "", false
	}
}

func branchName(f3 uint32) (string, bool) {
	switch f3 {
	case isa.Funct3BEQ:
		return "beq", true
	case isa.Funct3BNE:
		return "bne", true
	case isa.Funct3BLT:
		return "blt", true
	case isa.Funct3BGE:
		return "bge", true
	case isa.Funct3BLTU:
		return "bltu", true
	case isa.Funct3BGEU:
		return "bgeu", true
	default:
		return "", false
	}
}
