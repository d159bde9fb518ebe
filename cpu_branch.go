// cpu_branch.go - Branches, jumps, and their delay-slot scheduling

package main

// execRegimm dispatches the REGIMM (opcode 1) class: BLTZ/BGEZ and their
// link variants, selected by the rt field.
func (c *CPU) execRegimm(word uint32, pc uint32) ExceptionType {
	rsVal := int32(c.Regs.Read(rsField(word)))
	link := rtField(word)&0x10 != 0
	takeIfNeg := rtField(word)&0x01 == 0 // BLTZ*/BGEZ* share funct via rt bit 0

	taken := rsVal < 0
	if !takeIfNeg {
		taken = rsVal >= 0
	}

	if link {
		c.Regs.Write(31, pc+8)
	}
	if taken {
		c.scheduleBranch(word, pc)
	}
	return noException
}

func (c *CPU) execBEQ(word uint32, pc uint32) ExceptionType {
	if c.Regs.Read(rsField(word)) == c.Regs.Read(rtField(word)) {
		c.scheduleBranch(word, pc)
	}
	return noException
}

func (c *CPU) execBNE(word uint32, pc uint32) ExceptionType {
	if c.Regs.Read(rsField(word)) != c.Regs.Read(rtField(word)) {
		c.scheduleBranch(word, pc)
	}
	return noException
}

func (c *CPU) execBLEZ(word uint32, pc uint32) ExceptionType {
	if int32(c.Regs.Read(rsField(word))) <= 0 {
		c.scheduleBranch(word, pc)
	}
	return noException
}

func (c *CPU) execBGTZ(word uint32, pc uint32) ExceptionType {
	if int32(c.Regs.Read(rsField(word))) > 0 {
		c.scheduleBranch(word, pc)
	}
	return noException
}

// scheduleBranch computes target = PC + (sign-extend(imm) << 2) relative
// to the delay slot's address (PC+4, per the worked example in section
// 8) and schedules it into the delayed-branch slot.
func (c *CPU) scheduleBranch(word uint32, pc uint32) {
	target := pc + 4 + signExtImm16(word)<<2
	c.Regs.SetDelayedBranch(target)
}

func (c *CPU) execJ(word uint32, pc uint32) ExceptionType {
	target := (pc & 0xF0000000) | (target26(word) << 2)
	c.Regs.SetDelayedBranch(target)
	return noException
}

func (c *CPU) execJAL(word uint32, pc uint32) ExceptionType {
	target := (pc & 0xF0000000) | (target26(word) << 2)
	c.Regs.Write(31, pc+8)
	c.Regs.SetDelayedBranch(target)
	return noException
}

// execJR raises AddressErrorLoad immediately (at JR's own execution, per
// section 4.6) when the target is not word-aligned, rather than waiting
// for the next fetch to discover it.
func (c *CPU) execJR(word uint32) ExceptionType {
	target := c.Regs.Read(rsField(word))
	if target&0x3 != 0 {
		return addressErrorLoad(target)
	}
	c.Regs.SetDelayedBranch(target)
	return noException
}

func (c *CPU) execJALR(word uint32, pc uint32) ExceptionType {
	target := c.Regs.Read(rsField(word))
	if target&0x3 != 0 {
		return addressErrorLoad(target)
	}
	dest := rdField(word)
	if dest == 0 {
		dest = 31
	}
	c.Regs.Write(dest, pc+8)
	c.Regs.SetDelayedBranch(target)
	return noException
}
