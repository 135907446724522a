package catalog

var documentoFields = []Field{
	{ID: "tipoDocumento", Label: "Tipo de Documento", Kind: KindText, Placeholder: "Cédula de Ciudadanía"},
	{ID: "numeroDocumento", Label: "Número de Documento", Kind: KindText, Placeholder: "123456789"},
}

var tramites = []Tramite{
	{
		ID:          "antecedentes-judiciales",
		Name:        "Certificado de Antecedentes Judiciales",
		Description: "Consulta y descarga el certificado de antecedentes de la Policía Nacional.",
		PriceCOP:    15000,
		Benefit:     "Válido para cualquier trámite legal",
		Fields:      documentoFields,
	},
	{
		ID:          "afiliacion-eps",
		Name:        "Certificado de Afiliación a EPS",
		Description: "Obtén el certificado que acredita tu afiliación al sistema de salud.",
		PriceCOP:    12500,
		Benefit:     "Recíbelo en tu correo en minutos",
		Fields:      documentoFields,
	},
	{
		ID:          "afiliacion-pensiones",
		Name:        "Certificado de Afiliación a Pensiones",
		Description: "Certificado de tu fondo de pensiones para trámites laborales y personales.",
		PriceCOP:    12500,
		Benefit:     "Aceptado por todas las entidades",
		Fields:      documentoFields,
	},
	{
		ID:          "rut",
		Name:        "RUT (Inscripción/Actualización/Descarga)",
		Description: "Gestiona tu Registro Único Tributario ante la DIAN.",
		PriceCOP:    25000,
		Benefit:     "Actualizado y listo para imprimir",
		Fields: []Field{
			{ID: "tipoDocumento", Label: "Tipo de Documento", Kind: KindText, Placeholder: "Cédula de Ciudadanía"},
			{ID: "numeroDocumento", Label: "Número de Documento", Kind: KindText, Placeholder: "123456789"},
			{ID: "fechaExpedicion", Label: "Fecha de Expedición del Documento", Kind: KindDate},
		},
	},
	{
		ID:          "camara-comercio",
		Name:        "Certificado de Cámara de Comercio (RUES)",
		Description: "Certificados de existencia y representación legal de empresas.",
		PriceCOP:    35000,
		Benefit:     "Información oficial del RUES",
		Fields: []Field{
			{ID: "nit", Label: "NIT de la Empresa", Kind: KindText, Placeholder: "900123456-7"},
		},
	},
	{
		ID:          "tradicion-libertad",
		Name:        "Certificado de Tradición y Libertad",
		Description: "Documento que informa el historial jurídico de un inmueble.",
		PriceCOP:    45000,
		Benefit:     "Directo de la Supernotariado",
		Fields: []Field{
			{ID: "matriculaInmobiliaria", Label: "Número de Matrícula Inmobiliaria", Kind: KindText, Placeholder: "050-123456"},
			{ID: "ciudad", Label: "Ciudad de la Oficina de Registro", Kind: KindText, Placeholder: "Bogotá D.C."},
		},
	},
	{
		ID:          "antecedentes-disciplinarios",
		Name:        "Antecedentes Disciplinarios (Procuraduría)",
		Description: "Certificado sobre inhabilidades y sanciones disciplinarias.",
		PriceCOP:    15000,
		Benefit:     "Consulta nacional al instante",
		Fields:      documentoFields,
	},
	{
		ID:          "antecedentes-fiscales",
		Name:        "Antecedentes Fiscales (Contraloría)",
		Description: "Certificado de responsabilidad fiscal emitido por la Contraloría.",
		PriceCOP:    15000,
		Benefit:     "Certificado oficial para contratos",
		Fields:      documentoFields,
	},
}
