package section

// wshape holds the tabulated properties of a rolled W-shape
type wshape struct {
	A  float64 // in²
	Ix float64 // in⁴, strong axis
	Iy float64 // in⁴
	J  float64 // in⁴
}

// AISC Shapes Database v15.0
var wShapes = map[string]wshape{
	"W6X9":   {A: 2.68, Ix: 16.4, Iy: 2.20, J: 0.0405},
	"W6X12":  {A: 3.55, Ix: 22.1, Iy: 2.99, J: 0.0903},
	"W6X16":  {A: 4.74, Ix: 32.1, Iy: 4.43, J: 0.221},
	"W8X10":  {A: 2.96, Ix: 30.8, Iy: 2.09, J: 0.0426},
	"W8X13":  {A: 3.84, Ix: 39.6, Iy: 2.73, J: 0.0871},
	"W8X18":  {A: 5.26, Ix: 61.9, Iy: 7.97, J: 0.172},
	"W8X24":  {A: 7.08, Ix: 82.7, Iy: 18.3, J: 0.346},
	"W8X31":  {A: 9.13, Ix: 110, Iy: 37.1, J: 0.536},
	"W10X12": {A: 3.54, Ix: 53.8, Iy: 2.18, J: 0.0548},
	"W10X15": {A: 4.41, Ix: 68.9, Iy: 2.89, J: 0.104},
	"W10X19": {A: 5.62, Ix: 96.3, Iy: 4.29, J: 0.233},
	"W10X22": {A: 6.49, Ix: 118, Iy: 11.4, J: 0.239},
	"W10X26": {A: 7.61, Ix: 144, Iy: 14.1, J: 0.402},
	"W10X33": {A: 9.71, Ix: 171, Iy: 36.6, J: 0.583},
	"W12X14": {A: 4.16, Ix: 88.6, Iy: 2.36, J: 0.0704},
	"W12X16": {A: 4.71, Ix: 103, Iy: 2.82, J: 0.103},
	"W12X19": {A: 5.57, Ix: 130, Iy: 3.76, J: 0.180},
	"W12X22": {A: 6.48, Ix: 156, Iy: 4.66, J: 0.293},
	"W12X26": {A: 7.65, Ix: 204, Iy: 17.3, J: 0.300},
	"W12X30": {A: 8.79, Ix: 238, Iy: 20.3, J: 0.457},
	"W12X35": {A: 10.3, Ix: 285, Iy: 24.5, J: 0.741},
	"W14X22": {A: 6.49, Ix: 199, Iy: 7.00, J: 0.208},
	"W14X26": {A: 7.69, Ix: 245, Iy: 8.91, J: 0.358},
	"W14X30": {A: 8.85, Ix: 291, Iy: 19.6, J: 0.380},
	"W14X34": {A: 10.0, Ix: 340, Iy: 23.3, J: 0.569},
	"W16X26": {A: 7.68, Ix: 301, Iy: 9.59, J: 0.262},
	"W16X31": {A: 9.13, Ix: 375, Iy: 12.4, J: 0.461},
	"W16X36": {A: 10.6, Ix: 448, Iy: 24.5, J: 0.545},
	"W18X35": {A: 10.3, Ix: 510, Iy: 15.3, J: 0.506},
	"W18X40": {A: 11.8, Ix: 612, Iy: 19.1, J: 0.810},
	"W18X50": {A: 14.7, Ix: 800, Iy: 40.1, J: 1.24},
	"W21X44": {A: 13.0, Ix: 843, Iy: 20.7, J: 0.770},
	"W21X50": {A: 14.7, Ix: 984, Iy: 24.9, J: 1.14},
	"W24X55": {A: 16.2, Ix: 1350, Iy: 29.1, J: 1.18},
	"W24X62": {A: 18.2, Ix: 1550, Iy: 34.5, J: 1.71},
	"W27X84": {A: 24.7, Ix: 2850, Iy: 106, J: 2.81},
	"W30X90": {A: 26.3, Ix: 3610, Iy: 115, J: 2.84},
}

func wShapeProperties(key string) (Properties, bool) {
	w, ok := wShapes[key]
	if !ok {
		return Properties{}, false
	}
	return Properties{
		Designator: key,
		Family:     WideFlange,
		A:          w.A,
		Iy:         w.Iy,
		Iz:         w.Ix,
		J:          w.J,
		Weight:     w.A * steelWeightPerArea,
	}, true
}
