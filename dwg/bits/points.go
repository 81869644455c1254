package bits

// Point2 is a 2D point or vector.
type Point2 struct{ X, Y float64 }

// Point3 is a 3D point or vector.
type Point3 struct{ X, Y, Z float64 }

func (c *Chain) readDoubles(read func() (float64, error), dst ...*float64) (err error) {
	defer c.undo(c.pos, &err)
	for _, p := range dst {
		if *p, err = read(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chain) writeDoubles(write func(float64) error, src ...float64) (err error) {
	defer c.undo(c.pos, &err)
	for _, v := range src {
		if err = write(v); err != nil {
			return err
		}
	}
	return nil
}

// Read2RD reads two raw doubles.
func (c *Chain) Read2RD() (p Point2, err error) {
	err = c.readDoubles(c.ReadRD, &p.X, &p.Y)
	return p, err
}

// Write2RD writes two raw doubles.
func (c *Chain) Write2RD(p Point2) error { return c.writeDoubles(c.WriteRD, p.X, p.Y) }

// Read3RD reads three raw doubles.
func (c *Chain) Read3RD() (p Point3, err error) {
	err = c.readDoubles(c.ReadRD, &p.X, &p.Y, &p.Z)
	return p, err
}

// Write3RD writes three raw doubles.
func (c *Chain) Write3RD(p Point3) error { return c.writeDoubles(c.WriteRD, p.X, p.Y, p.Z) }

// Read2BD reads two compacted doubles.
func (c *Chain) Read2BD() (p Point2, err error) {
	err = c.readDoubles(c.ReadBD, &p.X, &p.Y)
	return p, err
}

// Write2BD writes two compacted doubles.
func (c *Chain) Write2BD(p Point2) error { return c.writeDoubles(c.WriteBD, p.X, p.Y) }

// Read3BD reads three compacted doubles.
func (c *Chain) Read3BD() (p Point3, err error) {
	err = c.readDoubles(c.ReadBD, &p.X, &p.Y, &p.Z)
	return p, err
}

// Write3BD writes three compacted doubles.
func (c *Chain) Write3BD(p Point3) error { return c.writeDoubles(c.WriteBD, p.X, p.Y, p.Z) }

// Read2DD reads a point stored relative to def, one DD per coordinate.
func (c *Chain) Read2DD(def Point2) (p Point2, err error) {
	defer c.undo(c.pos, &err)
	if p.X, err = c.ReadDD(def.X); err != nil {
		return Point2{}, err
	}
	if p.Y, err = c.ReadDD(def.Y); err != nil {
		return Point2{}, err
	}
	return p, nil
}

// Write2DD writes p relative to def.
func (c *Chain) Write2DD(p, def Point2) (err error) {
	defer c.undo(c.pos, &err)
	if err := c.WriteDD(p.X, def.X); err != nil {
		return err
	}
	return c.WriteDD(p.Y, def.Y)
}

// Read3DD reads a 3D point stored relative to def.
func (c *Chain) Read3DD(def Point3) (p Point3, err error) {
	defer c.undo(c.pos, &err)
	if p.X, err = c.ReadDD(def.X); err != nil {
		return Point3{}, err
	}
	if p.Y, err = c.ReadDD(def.Y); err != nil {
		return Point3{}, err
	}
	if p.Z, err = c.ReadDD(def.Z); err != nil {
		return Point3{}, err
	}
	return p, nil
}

// Write3DD writes a 3D point relative to def.
func (c *Chain) Write3DD(p, def Point3) (err error) {
	defer c.undo(c.pos, &err)
	if err := c.WriteDD(p.X, def.X); err != nil {
		return err
	}
	if err := c.WriteDD(p.Y, def.Y); err != nil {
		return err
	}
	return c.WriteDD(p.Z, def.Z)
}
