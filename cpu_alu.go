// cpu_alu.go - Arithmetic, logical, shift, and multiply/divide instructions

package main

// execSpecial dispatches the SPECIAL (opcode 0) class by its funct field:
// shifts, ALU-R ops, multiply/divide, HI/LO moves, JR/JALR, SYSCALL/BREAK.
func (c *CPU) execSpecial(word uint32, pc uint32) ExceptionType {
	switch funct(word) {
	case 0x00: // SLL
		c.Regs.Write(rdField(word), c.Regs.Read(rtField(word))<<shamt(word))
		return noException
	case 0x02: // SRL
		c.Regs.Write(rdField(word), c.Regs.Read(rtField(word))>>shamt(word))
		return noException
	case 0x03: // SRA
		v := int32(c.Regs.Read(rtField(word))) >> shamt(word)
		c.Regs.Write(rdField(word), uint32(v))
		return noException
	case 0x04: // SLLV (corrected: shift amount is rs & 0x1F, not rs & 7)
		sh := c.Regs.Read(rsField(word)) & 0x1F
		c.Regs.Write(rdField(word), c.Regs.Read(rtField(word))<<sh)
		return noException
	case 0x06: // SRLV
		sh := c.Regs.Read(rsField(word)) & 0x1F
		c.Regs.Write(rdField(word), c.Regs.Read(rtField(word))>>sh)
		return noException
	case 0x07: // SRAV
		sh := c.Regs.Read(rsField(word)) & 0x1F
		v := int32(c.Regs.Read(rtField(word))) >> sh
		c.Regs.Write(rdField(word), uint32(v))
		return noException
	case 0x08: // JR
		return c.execJR(word)
	case 0x09: // JALR
		return c.execJALR(word, pc)
	case 0x0C: // SYSCALL
		return ExceptionType{Kind: ExcSyscall}
	case 0x0D: // BREAK
		return ExceptionType{Kind: ExcBreak}
	case 0x10: // MFHI
		c.Regs.Write(rdField(word), c.Regs.HI())
		return noException
	case 0x11: // MTHI
		c.Regs.SetHI(c.Regs.Read(rsField(word)))
		return noException
	case 0x12: // MFLO
		c.Regs.Write(rdField(word), c.Regs.LO())
		return noException
	case 0x13: // MTLO
		c.Regs.SetLO(c.Regs.Read(rsField(word)))
		return noException
	case 0x18: // MULT
		c.mult(c.Regs.Read(rsField(word)), c.Regs.Read(rtField(word)))
		return noException
	case 0x19: // MULTU
		c.multu(c.Regs.Read(rsField(word)), c.Regs.Read(rtField(word)))
		return noException
	case 0x1A: // DIV
		c.div(c.Regs.Read(rsField(word)), c.Regs.Read(rtField(word)))
		return noException
	case 0x1B: // DIVU
		c.divu(c.Regs.Read(rsField(word)), c.Regs.Read(rtField(word)))
		return noException
	case 0x20: // ADD (overflow-checked)
		sum, overflow := addOverflow(int32(c.Regs.Read(rsField(word))), int32(c.Regs.Read(rtField(word))))
		if overflow {
			return ExceptionType{Kind: ExcArithmeticOverflow}
		}
		c.Regs.Write(rdField(word), uint32(sum))
		return noException
	case 0x21: // ADDU
		c.Regs.Write(rdField(word), c.Regs.Read(rsField(word))+c.Regs.Read(rtField(word)))
		return noException
	case 0x22: // SUB (overflow-checked)
		diff, overflow := subOverflow(int32(c.Regs.Read(rsField(word))), int32(c.Regs.Read(rtField(word))))
		if overflow {
			return ExceptionType{Kind: ExcArithmeticOverflow}
		}
		c.Regs.Write(rdField(word), uint32(diff))
		return noException
	case 0x23: // SUBU
		c.Regs.Write(rdField(word), c.Regs.Read(rsField(word))-c.Regs.Read(rtField(word)))
		return noException
	case 0x24: // AND
		c.Regs.Write(rdField(word), c.Regs.Read(rsField(word))&c.Regs.Read(rtField(word)))
		return noException
	case 0x25: // OR
		c.Regs.Write(rdField(word), c.Regs.Read(rsField(word))|c.Regs.Read(rtField(word)))
		return noException
	case 0x26: // XOR
		c.Regs.Write(rdField(word), c.Regs.Read(rsField(word))^c.Regs.Read(rtField(word)))
		return noException
	case 0x27: // NOR
		c.Regs.Write(rdField(word), ^(c.Regs.Read(rsField(word)) | c.Regs.Read(rtField(word))))
		return noException
	case 0x2A: // SLT
		if int32(c.Regs.Read(rsField(word))) < int32(c.Regs.Read(rtField(word))) {
			c.Regs.Write(rdField(word), 1)
		} else {
			c.Regs.Write(rdField(word), 0)
		}
		return noException
	case 0x2B: // SLTU (corrected: MIPS I funct is 0x2B, not the source's 0x4B)
		if c.Regs.Read(rsField(word)) < c.Regs.Read(rtField(word)) {
			c.Regs.Write(rdField(word), 1)
		} else {
			c.Regs.Write(rdField(word), 0)
		}
		return noException
	default:
		return ExceptionType{Kind: ExcReserved}
	}
}

// execADDI is the immediate, overflow-checked add.
func (c *CPU) execADDI(word uint32) ExceptionType {
	sum, overflow := addOverflow(int32(c.Regs.Read(rsField(word))), int32(signExtImm16(word)))
	if overflow {
		return ExceptionType{Kind: ExcArithmeticOverflow}
	}
	c.Regs.Write(rtField(word), uint32(sum))
	return noException
}

func (c *CPU) execADDIU(word uint32) ExceptionType {
	c.Regs.Write(rtField(word), c.Regs.Read(rsField(word))+signExtImm16(word))
	return noException
}

func (c *CPU) execSLTI(word uint32) ExceptionType {
	if int32(c.Regs.Read(rsField(word))) < int32(signExtImm16(word)) {
		c.Regs.Write(rtField(word), 1)
	} else {
		c.Regs.Write(rtField(word), 0)
	}
	return noException
}

func (c *CPU) execSLTIU(word uint32) ExceptionType {
	if c.Regs.Read(rsField(word)) < signExtImm16(word) {
		c.Regs.Write(rtField(word), 1)
	} else {
		c.Regs.Write(rtField(word), 0)
	}
	return noException
}

func (c *CPU) execANDI(word uint32) ExceptionType {
	c.Regs.Write(rtField(word), c.Regs.Read(rsField(word))&imm16(word))
	return noException
}

func (c *CPU) execORI(word uint32) ExceptionType {
	c.Regs.Write(rtField(word), c.Regs.Read(rsField(word))|imm16(word))
	return noException
}

func (c *CPU) execXORI(word uint32) ExceptionType {
	c.Regs.Write(rtField(word), c.Regs.Read(rsField(word))^imm16(word))
	return noException
}

func (c *CPU) execLUI(word uint32) ExceptionType {
	c.Regs.Write(rtField(word), imm16(word)<<16)
	return noException
}

// addOverflow computes a+b with MIPS ADD/ADDI overflow semantics: the
// destination must not be written when it fires, so the caller checks
// the bool before committing.
func addOverflow(a, b int32) (int32, bool) {
	sum := a + b
	overflow := (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0)
	return sum, overflow
}

// subOverflow computes a-b with MIPS SUB overflow semantics.
func subOverflow(a, b int32) (int32, bool) {
	diff := a - b
	overflow := (a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0)
	return diff, overflow
}

func (c *CPU) mult(rs, rt uint32) {
	product := int64(int32(rs)) * int64(int32(rt))
	c.Regs.SetLO(uint32(product))
	c.Regs.SetHI(uint32(product >> 32))
}

func (c *CPU) multu(rs, rt uint32) {
	product := uint64(rs) * uint64(rt)
	c.Regs.SetLO(uint32(product))
	c.Regs.SetHI(uint32(product >> 32))
}

func (c *CPU) div(rs, rt uint32) {
	dividend, divisor := int32(rs), int32(rt)
	if divisor == 0 {
		c.Regs.SetHI(uint32(dividend))
		if dividend < 0 {
			c.Regs.SetLO(1)
		} else {
			c.Regs.SetLO(0xFFFFFFFF)
		}
		return
	}
	c.Regs.SetLO(uint32(dividend / divisor))
	c.Regs.SetHI(uint32(dividend % divisor))
}

func (c *CPU) divu(rs, rt uint32) {
	if rt == 0 {
		c.Regs.SetHI(rs)
		c.Regs.SetLO(0xFFFFFFFF)
		return
	}
	c.Regs.SetLO(rs / rt)
	c.Regs.SetHI(rs % rt)
}
