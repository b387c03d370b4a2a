package vm

import (
	"fmt"

	"github.com/bassosimone/rv32sim/pkg/isa"
)

// Execute decodes and executes a single instruction word against s,
// mutating registers, memory, PC, Running, and InstructionCount as
// appropriate. Dispatch is a tagged switch on the opcode field with an
// inner switch on (funct3, funct7) where relevant, per spec.md section
// 9's design note: "clearer and faster than table-driven decoding at
// this scale", matching the shape of the teacher VM's Execute method
// (pkg/vm/vm.go in the RiSC-32 source).
//
// Execute returns an error and leaves the state exactly as partial
// execution left it when the instruction cannot be completed (unknown
// opcode/funct combination, unknown system call, or an out-of-range
// memory access); per spec.md section 7, there is no rollback.
func (s *State) Execute(word uint32) error {
	opcode := DecodeOpcode(word)
	switch opcode {
	case isa.OpcodeOp:
		if err := s.executeOp(word); err != nil {
			return err
		}
		s.PC += 4
	case isa.OpcodeOpImm:
		if err := s.executeOpImm(word); err != nil {
			return err
		}
		s.PC += 4
	case isa.OpcodeLoad:
		if err := s.executeLoad(word); err != nil {
			return err
		}
		s.PC += 4
	case isa.OpcodeStore:
		if err := s.executeStore(word); err != nil {
			return err
		}
		s.PC += 4
	case isa.OpcodeBranch:
		taken, err := s.evalBranch(word)
		if err != nil {
			return err
		}
		if taken {
			s.PC = s.PC + DecodeImmB(word)
		} else {
			s.PC += 4
		}
	case isa.OpcodeJAL:
		rd := DecodeRd(word)
		s.SetReg(rd, s.PC+4)
		s.PC = s.PC + DecodeImmJ(word)
	case isa.OpcodeJALR:
		rd, rs1 := DecodeRd(word), DecodeRs1(word)
		target := (s.Reg(rs1) + DecodeImmI(word)) &^ uint32(1)
		ret := s.PC + 4
		s.SetReg(rd, ret)
		s.PC = target
	case isa.OpcodeLUI:
		s.SetReg(DecodeRd(word), DecodeImmU(word))
		s.PC += 4
	case isa.OpcodeAUIPC:
		s.SetReg(DecodeRd(word), s.PC+DecodeImmU(word))
		s.PC += 4
	case isa.OpcodeSystem:
		imm12 := (word >> 20) & 0xFFF
		switch imm12 {
		case isa.SystemECALL, isa.SystemEBREAK:
			s.Running = false
			s.PC += 4
		default:
			return fmt.Errorf("%w: immediate %d", ErrUnknownSystemCall, imm12)
		}
	default:
		return fmt.Errorf("%w: %#02x", ErrUnknownOpcode, opcode)
	}
	s.InstructionCount++
	return nil
}

func (s *State) executeOp(word uint32) error {
	rd, rs1, rs2 := DecodeRd(word), DecodeRs1(word), DecodeRs2(word)
	f3, f7 := DecodeFunct3(word), DecodeFunct7(word)
	a, b := s.Reg(rs1), s.Reg(rs2)
	var result uint32
	switch {
	case f3 == isa.Funct3ADDSUB && f7 == isa.Funct7Base:
		result = a + b
	case f3 == isa.Funct3ADDSUB && f7 == isa.Funct7Alt:
		result = a - b
	case f3 == isa.Funct3SLL && f7 == isa.Funct7Base:
		result = a << (b & 0x1F)
	case f3 == isa.Funct3SLT && f7 == isa.Funct7Base:
		result = boolToU32(int32(a) < int32(b))
	case f3 == isa.Funct3SLTU && f7 == isa.Funct7Base:
		result = boolToU32(a < b)
	case f3 == isa.Funct3XOR && f7 == isa.Funct7Base:
		result = a ^ b
	case f3 == isa.Funct3OR && f7 == isa.Funct7Base:
		result = a | b
	case f3 == isa.Funct3AND && f7 == isa.Funct7Base:
		result = a & b
	case f3 == isa.Funct3SRLSRA && f7 == isa.Funct7Base:
		result = a >> (b & 0x1F)
	case f3 == isa.Funct3SRLSRA && f7 == isa.Funct7Alt:
		result = uint32(int32(a) >> (b & 0x1F))
	default:
		return fmt.Errorf("%w: funct3=%#o funct7=%#02x", ErrUnknownFunct, f3, f7)
	}
	s.SetReg(rd, result)
	return nil
}

func (s *State) executeOpImm(word uint32) error {
	rd, rs1, f3 := DecodeRd(word), DecodeRs1(word), DecodeFunct3(word)
	a := s.Reg(rs1)
	imm := DecodeImmI(word)
	var result uint32
	switch f3 {
	case isa.Funct3ADDSUB:
		result = a + imm
	case isa.Funct3SLT:
		result = boolToU32(int32(a) < int32(imm))
	case isa.Funct3SLTU:
		// SLTIU: the sign-extended immediate is widened to a 32-bit
		// unsigned value before the unsigned compare, per spec.md
		// section 9, design note 4.
		result = boolToU32(a < imm)
	case isa.Funct3XOR:
		result = a ^ imm
	case isa.Funct3OR:
		result = a | imm
	case isa.Funct3AND:
		result = a & imm
	case isa.Funct3SLL:
		result = a << DecodeShamt(word)
	case isa.Funct3SRLSRA:
		if DecodeFunct7(word)&isa.Funct7Alt != 0 {
			result = uint32(int32(a) >> DecodeShamt(word)) // SRAI
		} else {
			result = a >> DecodeShamt(word) // SRLI
		}
	default:
		return fmt.Errorf("%w: funct3=%#o", ErrUnknownFunct, f3)
	}
	s.SetReg(rd, result)
	return nil
}

func (s *State) executeLoad(word uint32) error {
	rd, rs1, f3 := DecodeRd(word), DecodeRs1(word), DecodeFunct3(word)
	addr := s.Reg(rs1) + DecodeImmI(word)
	var result uint32
	switch f3 {
	case isa.Funct3LB:
		b, err := s.ReadByte(addr)
		if err != nil {
			return err
		}
		result = isa.SignExtend(uint32(b), 8)
	case isa.Funct3LH:
		h, err := s.ReadHalf(addr)
		if err != nil {
			return err
		}
		result = isa.SignExtend(uint32(h), 16)
	case isa.Funct3LW:
		w, err := s.ReadWord(addr)
		if err != nil {
			return err
		}
		result = w
	case isa.Funct3LBU:
		b, err := s.ReadByte(addr)
		if err != nil {
			return err
		}
		result = uint32(b)
	case isa.Funct3LHU:
		h, err := s.ReadHalf(addr)
		if err != nil {
			return err
		}
		result = uint32(h)
	default:
		return fmt.Errorf("%w: funct3=%#o", ErrUnknownFunct, f3)
	}
	s.SetReg(rd, result)
	return nil
}

func (s *State) executeStore(word uint32) error {
	rs1, rs2, f3 := DecodeRs1(word), DecodeRs2(word), DecodeFunct3(word)
	addr := s.Reg(rs1) + DecodeImmS(word)
	value := s.Reg(rs2)
	switch f3 {
	case isa.Funct3SB:
		return s.WriteByte(addr, byte(value))
	case isa.Funct3SH:
		return s.WriteHalf(addr, uint16(value))
	case isa.Funct3SW:
		return s.WriteWord(addr, value)
	default:
		return fmt.Errorf("%w: funct3=%#o", ErrUnknownFunct, f3)
	}
}

func (s *State) evalBranch(word uint32) (bool, error) {
	rs1, rs2, f3 := DecodeRs1(word), DecodeRs2(word), DecodeFunct3(word)
	a, b := s.Reg(rs1), s.Reg(rs2)
	switch f3 {
	case isa.Funct3BEQ:
		return a == b, nil
	case isa.Funct3BNE:
		return a != b, nil
	case isa.Funct3BLT:
		return int32(a) < int32(b), nil
	case isa.Funct3BGE:
		return int32(a) >= int32(b), nil
	case isa.Funct3BLTU:
		return a < b, nil
	case isa.Funct3BGEU:
		return a >= b, nil
	default:
		return false, fmt.Errorf("%w: funct3=%#o", ErrUnknownFunct, f3)
	}
}

func boolToU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
