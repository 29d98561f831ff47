package spillsim

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/ctessum/geom/encoding/shp"
)

func TestOutputter(t *testing.T) {
	m := newTestMesh(t, twoTriangleData())
	d := newTestSpill(m, 0, 1, 4)
	o := NewOutputter(4, 2)
	d.InitFuncs = append(d.InitFuncs, o.Snapshot())
	d.RunFuncs = append(d.RunFuncs, o.Snapshot())

	initialOil := make([]float64, len(m.Cells))
	for i, c := range m.Cells {
		initialOil[i] = c.Oil
	}

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}

	if want := []int{0, 2, 4}; !reflect.DeepEqual(o.Steps(), want) {
		t.Fatalf("archived steps = %v, want %v", o.Steps(), want)
	}

	// The step-0 snapshot is the untouched initial field.
	arr, ok := o.Field(0)
	if !ok {
		t.Fatal("no snapshot at step 0")
	}
	for i, v := range arr.Elements {
		if v != initialOil[i] {
			t.Errorf("snapshot cell %d = %g, want initial %g", i, v, initialOil[i])
		}
	}

	// The final snapshot matches the live field.
	arr, ok = o.Field(4)
	if !ok {
		t.Fatal("no snapshot at step 4")
	}
	for i, c := range m.Cells {
		if arr.Elements[i] != c.Oil {
			t.Errorf("final snapshot cell %d = %g, want %g", i, arr.Elements[i], c.Oil)
		}
	}
}

func TestOutputterDisabled(t *testing.T) {
	m := newTestMesh(t, twoTriangleData())
	d := newTestSpill(m, 0, 1, 4)
	o := NewOutputter(4, 0)
	d.InitFuncs = append(d.InitFuncs, o.Snapshot())
	d.RunFuncs = append(d.RunFuncs, o.Snapshot())
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if len(o.Steps()) != 0 {
		t.Errorf("archived %d snapshots with archiving disabled", len(o.Steps()))
	}
}

func TestWriteShapefile(t *testing.T) {
	m := newTestMesh(t, squareMeshData())
	d := &Spill{Mesh: m}
	fileName := filepath.Join(t.TempDir(), "oil.shp")
	if err := d.WriteShapefile(fileName); err != nil {
		t.Fatal(err)
	}

	dec, err := shp.NewDecoder(fileName)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	var rows int
	for {
		_, fields, more := dec.DecodeRowFields("oil")
		if !more {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields["oil"]), 64)
		if err != nil {
			t.Fatal(err)
		}
		if different(v, m.Cells[rows].Oil) {
			t.Errorf("row %d oil = %g, want %g", rows, v, m.Cells[rows].Oil)
		}
		rows++
	}
	if err := dec.Error(); err != nil {
		t.Fatal(err)
	}
	// Only triangles are written; the boundary lines are dropped.
	if rows != m.NumTriangles() {
		t.Errorf("shapefile has %d rows, want %d", rows, m.NumTriangles())
	}
}

func TestWriteRegionSeries(t *testing.T) {
	var buf bytes.Buffer
	series := []RegionSample{{Time: 0, Oil: 1.5}, {Time: 0.25, Oil: 1.25}}
	if err := WriteRegionSeries(&buf, series); err != nil {
		t.Fatal(err)
	}
	want := "time,region_oil\n0,1.5\n0.25,1.25\n"
	if buf.String() != want {
		t.Errorf("got:\n%swant:\n%s", buf.String(), want)
	}
}
